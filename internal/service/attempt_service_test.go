package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/auth"
	"github.com/portalpnd/simulado-api/internal/dto"
	"github.com/portalpnd/simulado-api/internal/model"
)

// fakeStore is an in-memory stand-in for the three repositories, mirroring
// the transactional semantics of the real gorm-backed implementations.
type fakeStore struct {
	mu        sync.Mutex
	seq       uint
	attempts  map[uint]*model.Attempt
	answers   map[uint][]model.Answer
	questions map[uint]model.Question
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attempts:  map[uint]*model.Attempt{},
		answers:   map[uint][]model.Answer{},
		questions: map[uint]model.Question{},
	}
}

func (s *fakeStore) addQuestion(id uint, correct string) {
	s.questions[id] = model.Question{
		ID:            id,
		Prompt:        fmt.Sprintf("question %d", id),
		OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectLetter: correct,
	}
}

/* QuestionRepository */

func (s *fakeStore) FindByID(id uint) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, apperr.ErrNotFound)
	}
	return &q, nil
}

func (s *fakeStore) Create(q *model.Question) error { s.questions[q.ID] = *q; return nil }
func (s *fakeStore) FindAll(limit, offset int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		out = append(out, q)
	}
	return out, nil
}
func (s *fakeStore) Update(q *model.Question) error { s.questions[q.ID] = *q; return nil }
func (s *fakeStore) Delete(id uint) error           { delete(s.questions, id); return nil }

/* AttemptRepository */

type fakeAttemptRepo struct{ *fakeStore }

func (s fakeAttemptRepo) Create(attempt *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	attempt.ID = s.seq
	clone := *attempt
	s.attempts[attempt.ID] = &clone
	return nil
}

func (s fakeAttemptRepo) FindByID(id uint) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, fmt.Errorf("attempt %d: %w", id, apperr.ErrNotFound)
	}
	clone := *a
	return &clone, nil
}

func (s fakeAttemptRepo) FindAllByUser(userID uuid.UUID, limit, offset int) ([]model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attempt
	for _, a := range s.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	// newest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartedAt.After(out[i].StartedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s fakeAttemptRepo) AppendAnswer(answer *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[answer.AttemptID]
	if !ok {
		return fmt.Errorf("attempt %d: %w", answer.AttemptID, apperr.ErrNotFound)
	}
	for _, existing := range s.answers[answer.AttemptID] {
		if existing.QuestionID == answer.QuestionID {
			return fmt.Errorf("question %d already answered: %w", answer.QuestionID, apperr.ErrConflict)
		}
	}
	if attempt.FinishedAt != nil {
		return fmt.Errorf("attempt %d is finished: %w", answer.AttemptID, apperr.ErrConflict)
	}
	s.answers[answer.AttemptID] = append(s.answers[answer.AttemptID], *answer)
	attempt.TotalQuestions++
	if answer.IsCorrect {
		attempt.CorrectAnswers++
	}
	return nil
}

func (s fakeAttemptRepo) Finish(id uint, finishedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return false, fmt.Errorf("attempt %d: %w", id, apperr.ErrNotFound)
	}
	if attempt.FinishedAt != nil {
		return false, nil
	}
	attempt.FinishedAt = &finishedAt
	return true, nil
}

/* AnswerRepository */

type fakeAnswerRepo struct{ *fakeStore }

func (s fakeAnswerRepo) ListByAttempt(attemptID uint) ([]model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Answer, len(s.answers[attemptID]))
	copy(out, s.answers[attemptID])
	for i := range out {
		out[i].Question = s.questions[out[i].QuestionID]
	}
	return out, nil
}

func newTestService(store *fakeStore) *attemptService {
	return &attemptService{
		attemptRepo:  fakeAttemptRepo{store},
		answerRepo:   fakeAnswerRepo{store},
		questionRepo: store,
		now:          time.Now,
	}
}

func caller() auth.Identity {
	return auth.Identity{UserID: uuid.New()}
}

func TestStartAttempt_Unauthenticated(t *testing.T) {
	svc := newTestService(newFakeStore())
	if _, err := svc.StartAttempt(auth.Identity{}); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("StartAttempt with zero identity: err = %v, want ErrUnauthenticated", err)
	}
}

func TestStartAttempt_InitialState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	id := caller()

	started, err := svc.StartAttempt(id)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if started.UserID != id.UserID {
		t.Errorf("owner = %s, want %s", started.UserID, id.UserID)
	}

	summary, err := svc.GetSummary(id, started.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalQuestions != 0 || summary.CorrectAnswers != 0 {
		t.Errorf("fresh attempt counters = (%d, %d), want (0, 0)", summary.TotalQuestions, summary.CorrectAnswers)
	}
	if summary.Percentage != nil {
		t.Errorf("fresh attempt percentage = %v, want nil", *summary.Percentage)
	}
	if summary.Finished {
		t.Error("fresh attempt reported finished")
	}
}

func TestRecordAnswer_Verdicts(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "B")
	store.addQuestion(2, "B")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	result, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "B"})
	if err != nil {
		t.Fatalf("RecordAnswer correct: %v", err)
	}
	if !result.IsCorrect || result.CorrectLetter != "B" {
		t.Errorf("correct submission: got %+v", result)
	}

	result, err = svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 2, SelectedLetter: "a"})
	if err != nil {
		t.Fatalf("RecordAnswer wrong: %v", err)
	}
	if result.IsCorrect {
		t.Error("wrong submission judged correct")
	}
	if result.SelectedLetter != "A" {
		t.Errorf("selected letter not normalized: %q", result.SelectedLetter)
	}
}

func TestRecordAnswer_InvalidLetter(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "B")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	for _, letter := range []string{"", "E", "AB"} {
		_, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: letter})
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("letter %q: err = %v, want ErrInvalidInput", letter, err)
		}
	}
}

func TestRecordAnswer_UnknownQuestion_LeavesCountersUntouched(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "A")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)
	if _, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "A"}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	_, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 99, SelectedLetter: "A"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown question: err = %v, want ErrNotFound", err)
	}

	summary, _ := svc.GetSummary(id, started.ID)
	if summary.TotalQuestions != 1 || summary.CorrectAnswers != 1 {
		t.Errorf("counters after failed submit = (%d, %d), want (1, 1)", summary.TotalQuestions, summary.CorrectAnswers)
	}
}

func TestRecordAnswer_Duplicate_NoDoubleCount(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "C")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	if _, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "C"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "C"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("second submit: err = %v, want ErrConflict", err)
	}

	summary, _ := svc.GetSummary(id, started.ID)
	if summary.TotalQuestions != 1 || summary.CorrectAnswers != 1 {
		t.Errorf("counters after duplicate = (%d, %d), want (1, 1)", summary.TotalQuestions, summary.CorrectAnswers)
	}
}

func TestRecordAnswer_FinishedAttempt_Conflict(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "A")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)
	if _, err := svc.FinishAttempt(id, started.ID); err != nil {
		t.Fatalf("FinishAttempt: %v", err)
	}

	_, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "A"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("submit after finish: err = %v, want ErrConflict", err)
	}
}

func TestRecordAnswer_Ownership(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "A")
	svc := newTestService(store)
	owner := caller()
	started, _ := svc.StartAttempt(owner)

	stranger := caller()
	_, err := svc.RecordAnswer(stranger, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "A"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("stranger submit: err = %v, want ErrForbidden", err)
	}

	admin := auth.Identity{UserID: uuid.New(), Admin: true}
	if _, err := svc.RecordAnswer(admin, started.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "A"}); err != nil {
		t.Fatalf("admin submit: %v", err)
	}
}

func TestFinishAttempt_Idempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	first, err := svc.FinishAttempt(id, started.ID)
	if err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if !first.Finished || first.FinishedAt == nil {
		t.Fatal("attempt not marked finished")
	}

	second, err := svc.FinishAttempt(id, started.ID)
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if !second.FinishedAt.Equal(*first.FinishedAt) {
		t.Errorf("finished_at changed on second finish: %v != %v", second.FinishedAt, first.FinishedAt)
	}
}

func TestFinishAttempt_Forbidden(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	owner := caller()
	started, _ := svc.StartAttempt(owner)

	if _, err := svc.FinishAttempt(caller(), started.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("stranger finish: err = %v, want ErrForbidden", err)
	}
}

func TestScenario_ThreeAnswersTwoCorrect(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "B")
	store.addQuestion(2, "C")
	store.addQuestion(3, "D")
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	submissions := []dto.SubmitAnswerDTO{
		{QuestionID: 1, SelectedLetter: "B"}, // correct
		{QuestionID: 2, SelectedLetter: "C"}, // correct
		{QuestionID: 3, SelectedLetter: "A"}, // wrong
	}
	for _, sub := range submissions {
		if _, err := svc.RecordAnswer(id, started.ID, sub); err != nil {
			t.Fatalf("RecordAnswer(%d): %v", sub.QuestionID, err)
		}
	}

	summary, err := svc.FinishAttempt(id, started.ID)
	if err != nil {
		t.Fatalf("FinishAttempt: %v", err)
	}
	if summary.TotalQuestions != 3 || summary.CorrectAnswers != 2 {
		t.Errorf("counters = (%d, %d), want (3, 2)", summary.TotalQuestions, summary.CorrectAnswers)
	}
	if summary.Percentage == nil || *summary.Percentage != 66.67 {
		t.Errorf("percentage = %v, want 66.67", summary.Percentage)
	}
	if summary.CorrectAnswers > summary.TotalQuestions {
		t.Error("correct_answers exceeds total_questions")
	}

	reviews, err := svc.ListAnswers(id, started.ID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("review length = %d, want 3", len(reviews))
	}
	if !reviews[0].IsCorrect || !reviews[1].IsCorrect || reviews[2].IsCorrect {
		t.Errorf("review verdicts = %+v", reviews)
	}
}

func TestConcurrentRecordAnswer_DifferentQuestions(t *testing.T) {
	store := newFakeStore()
	const n = 20
	for i := uint(1); i <= n; i++ {
		store.addQuestion(i, "A")
	}
	svc := newTestService(store)
	id := caller()
	started, _ := svc.StartAttempt(id)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := uint(1); i <= n; i++ {
		wg.Add(1)
		go func(questionID uint) {
			defer wg.Done()
			_, err := svc.RecordAnswer(id, started.ID, dto.SubmitAnswerDTO{QuestionID: questionID, SelectedLetter: "A"})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent RecordAnswer: %v", err)
		}
	}

	summary, _ := svc.GetSummary(id, started.ID)
	if summary.TotalQuestions != n || summary.CorrectAnswers != n {
		t.Errorf("counters = (%d, %d), want (%d, %d)", summary.TotalQuestions, summary.CorrectAnswers, n, n)
	}
}

func TestListHistory_OrderAndPercentage(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, "A")
	svc := newTestService(store)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	id := caller()

	older, _ := svc.StartAttempt(id)
	if _, err := svc.RecordAnswer(id, older.ID, dto.SubmitAnswerDTO{QuestionID: 1, SelectedLetter: "A"}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	newer, _ := svc.StartAttempt(id)

	history, err := svc.ListHistory(id, 1, 20)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].ID != newer.ID {
		t.Errorf("history not ordered most recent first: %+v", history)
	}
	if history[0].Percentage != nil {
		t.Errorf("empty attempt percentage = %v, want nil", *history[0].Percentage)
	}
	if history[1].Percentage == nil || *history[1].Percentage != 100 {
		t.Errorf("answered attempt percentage = %v, want 100", history[1].Percentage)
	}

	// history is scoped to the caller
	otherHistory, err := svc.ListHistory(caller(), 1, 20)
	if err != nil {
		t.Fatalf("ListHistory other user: %v", err)
	}
	if len(otherHistory) != 0 {
		t.Errorf("other user's history length = %d, want 0", len(otherHistory))
	}
}
