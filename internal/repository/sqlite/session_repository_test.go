package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
	"github.com/lucasmv/flashdeck/internal/repository/sqlite"
	"github.com/lucasmv/flashdeck/internal/study"
	"github.com/lucasmv/flashdeck/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type SessionRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.SessionRepository
	cards repository.CardRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
	s.cards = sqlite.NewCardRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) setupUserAndDeck() (int64, int64) {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, "testuser")
	s.Require().NoError(err)

	var userID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, "testuser").Scan(&userID)
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `INSERT INTO decks (owner_id, title) VALUES (?, ?)`, userID, "Test Deck")
	s.Require().NoError(err)

	var deckID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM decks WHERE owner_id = ?`, userID).Scan(&deckID)
	s.Require().NoError(err)

	return userID, deckID
}

func (s *SessionRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()

	id, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: time.Now().UTC()})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	session, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Assert().Equal(userID, session.UserID)
	s.Assert().Equal(deckID, session.DeckID)
	s.Assert().Nil(session.EndTime)
	s.Assert().Zero(session.CardsStudied)
	s.Assert().Empty(session.CardResults)
}

func (s *SessionRepositorySuite) TestGet_NotFound() {
	session, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(session)
}

func (s *SessionRepositorySuite) TestRecordAnswer_PersistsBothRecords() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()
	now := time.Now().UTC().Truncate(time.Second)

	cardID, err := s.cards.Insert(ctx, models.Card{DeckID: deckID, Question: "q", Answer: "a"})
	s.Require().NoError(err)

	sessionID, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: now})
	s.Require().NoError(err)

	session, err := s.repo.Get(ctx, sessionID)
	s.Require().NoError(err)
	card, err := s.cards.Get(ctx, cardID)
	s.Require().NoError(err)

	updatedSession, updatedCard, err := study.ApplyResult(*session, *card, true, 2500, now)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.RecordAnswer(ctx, updatedSession, updatedCard))

	// Session side of the dual write.
	stored, err := s.repo.Get(ctx, sessionID)
	s.Require().NoError(err)
	s.Assert().Equal(1, stored.CardsStudied)
	s.Assert().Equal(1, stored.CorrectAnswers)
	s.Require().Len(stored.CardResults, 1)
	s.Assert().Equal(cardID, stored.CardResults[0].CardID)
	s.Assert().True(stored.CardResults[0].IsCorrect)
	s.Assert().Equal(2500, stored.CardResults[0].TimeSpentMs)

	// Card side of the dual write.
	storedCard, err := s.cards.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Equal(1, storedCard.ReviewCount)
	s.Assert().InDelta(0.4, storedCard.Difficulty, 1e-9)
}

func (s *SessionRepositorySuite) TestRecordAnswer_ResultsKeepOrder() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()
	now := time.Now().UTC()

	cardID, err := s.cards.Insert(ctx, models.Card{DeckID: deckID, Question: "q", Answer: "a"})
	s.Require().NoError(err)

	sessionID, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: now})
	s.Require().NoError(err)

	answers := []bool{true, false, true}
	for _, correct := range answers {
		session, err := s.repo.Get(ctx, sessionID)
		s.Require().NoError(err)
		card, err := s.cards.Get(ctx, cardID)
		s.Require().NoError(err)

		updatedSession, updatedCard, err := study.ApplyResult(*session, *card, correct, 1000, now)
		s.Require().NoError(err)
		s.Require().NoError(s.repo.RecordAnswer(ctx, updatedSession, updatedCard))
	}

	stored, err := s.repo.Get(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().Len(stored.CardResults, 3)
	for i, correct := range answers {
		s.Assert().Equal(correct, stored.CardResults[i].IsCorrect, "result %d out of order", i)
	}
	s.Assert().Equal(3, stored.CardsStudied)
	s.Assert().Equal(2, stored.CorrectAnswers)
	s.Assert().Equal(1, stored.IncorrectAnswers)
}

func (s *SessionRepositorySuite) TestUpdate_SetsEndTime() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()
	now := time.Now().UTC().Truncate(time.Second)

	sessionID, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: now})
	s.Require().NoError(err)

	session, err := s.repo.Get(ctx, sessionID)
	s.Require().NoError(err)

	ended, err := study.End(*session, now.Add(10*time.Minute))
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Update(ctx, ended))

	stored, err := s.repo.Get(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.EndTime)
	s.Assert().InDelta(10.0, stored.DurationMinutes(), 1e-6)
}

func (s *SessionRepositorySuite) TestListByUser_NewestFirst() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()
	now := time.Now().UTC()

	first, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: now.Add(-2 * time.Hour)})
	s.Require().NoError(err)
	second, err := s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: now})
	s.Require().NoError(err)

	sessions, err := s.repo.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Assert().Equal(second, sessions[0].ID)
	s.Assert().Equal(first, sessions[1].ID)
}

func (s *SessionRepositorySuite) TestListByDeck() {
	ctx := context.Background()
	userID, deckID := s.setupUserAndDeck()

	_, err := s.db.ExecContext(ctx, `INSERT INTO decks (owner_id, title) VALUES (?, ?)`, userID, "Other Deck")
	s.Require().NoError(err)
	var otherDeckID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM decks WHERE title = ?`, "Other Deck").Scan(&otherDeckID)
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: deckID, StartTime: time.Now().UTC()})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, models.Session{UserID: userID, DeckID: otherDeckID, StartTime: time.Now().UTC()})
	s.Require().NoError(err)

	sessions, err := s.repo.ListByDeck(ctx, userID, deckID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Assert().Equal(deckID, sessions[0].DeckID)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
