package services

import (
	"context"
	"errors"
	"testing"

	"prepstar/models"
)

type fakeQuestionStore struct {
	questions []models.Question
	err       error
}

func (f *fakeQuestionStore) ListQuestions(ctx context.Context, filter models.QuestionFilter, limit int) ([]models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.questions) {
		return f.questions[:limit], nil
	}
	return f.questions, nil
}

func (f *fakeQuestionStore) QuestionByID(ctx context.Context, id string) (*models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], nil
		}
	}
	return nil, errors.New("not found")
}

func TestRandomQuestionsServesMocksOnStoreError(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionStore{err: errors.New("mongo down")}, nil)
	questions := svc.RandomQuestions(context.Background(), models.QuestionFilter{}, 5)
	if len(questions) != len(MockQuestions) {
		t.Errorf("Expected the mock set, got %d questions", len(questions))
	}
}

func TestRandomQuestionsServesMocksWhenEmpty(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionStore{}, nil)
	questions := svc.RandomQuestions(context.Background(), models.QuestionFilter{}, 5)
	if len(questions) != len(MockQuestions) {
		t.Errorf("Expected the mock set for an empty store, got %d questions", len(questions))
	}
}

func TestRandomQuestionsTrimsToLimit(t *testing.T) {
	store := &fakeQuestionStore{}
	for i := 0; i < 20; i++ {
		store.questions = append(store.questions, models.Question{ID: string(rune('a' + i))})
	}
	svc := NewQuestionService(store, nil)

	questions := svc.RandomQuestions(context.Background(), models.QuestionFilter{}, 4)
	if len(questions) != 4 {
		t.Errorf("Expected 4 questions, got %d", len(questions))
	}
}

func TestQuestionByIDFallsBackToMock(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionStore{err: errors.New("mongo down")}, nil)
	question := svc.QuestionByID(context.Background(), "whatever")
	if question == nil || question.ID != MockQuestions[0].ID {
		t.Errorf("Expected the first mock question, got %+v", question)
	}
}

func TestQuestionByIDReturnsStoredQuestion(t *testing.T) {
	store := &fakeQuestionStore{questions: []models.Question{{ID: "q1", Question: "Why?"}}}
	svc := NewQuestionService(store, nil)

	question := svc.QuestionByID(context.Background(), "q1")
	if question.Question != "Why?" {
		t.Errorf("Expected the stored question, got %+v", question)
	}
}
