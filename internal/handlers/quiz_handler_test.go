package handlers_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_4_elearning/internal/handlers"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/service/mocks"
)

func newQuizRouter(svc *mocks.QuizService, identity *model.Identity) *chi.Mux {
	h := handlers.NewQuizHandler(svc)
	r := newAuthedRouter(identity)
	r.Post("/courses/{course_id}/quizzes", h.CreateQuiz)
	r.Get("/quizzes/{quiz_id}", h.GetQuiz)
	r.Post("/quizzes/{quiz_id}/submissions", h.SubmitQuiz)
	r.Get("/quizzes/{quiz_id}/submissions/latest", h.GetLatestSubmission)
	r.Get("/quizzes/{quiz_id}/submissions", h.ListSubmissions)
	return r
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		setupMock    func(m *mocks.QuizService)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "正常系: 採点結果を返す",
			body: model.SubmitQuizRequest{Answers: []int{1, 0, 2, 1, 3}},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitQuiz", mock.Anything, uint(4), []int{1, 0, 2, 1, 3}, uint(7)).
					Return(&model.GradeResult{Total: 5, Correct: 3, Score: 60}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: answers なし",
			body:         map[string]interface{}{},
			setupMock:    func(m *mocks.QuizService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "異常系: 負の添字",
			body:         model.SubmitQuizRequest{Answers: []int{-1}},
			setupMock:    func(m *mocks.QuizService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name: "異常系: 解答数が設問数と違う",
			body: model.SubmitQuizRequest{Answers: []int{1}},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitQuiz", mock.Anything, uint(4), []int{1}, uint(7)).
					Return(nil, model.NewAppError(model.QuizErrInvalidAnswersLength, "Answers length does not match the number of questions", "answers", model.ErrInvalidInput)).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  model.QuizErrInvalidAnswersLength,
		},
		{
			name: "異常系: 未受講",
			body: model.SubmitQuizRequest{Answers: []int{1}},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitQuiz", mock.Anything, uint(4), []int{1}, uint(7)).
					Return(nil, model.NewAppError(model.QuizErrNotEnrolled, "You are not enrolled in this course", "", model.ErrForbidden)).Once()
			},
			expectedCode: http.StatusForbidden,
			expectedErr:  model.QuizErrNotEnrolled,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.QuizService)
			tc.setupMock(svc)

			rr := sendRequest(t, newQuizRouter(svc, studentIdentity), http.MethodPost, "/quizzes/4/submissions", tc.body)

			assert.Equal(t, tc.expectedCode, rr.Code, rr.Body.String())
			if tc.expectedErr != "" {
				assert.Equal(t, tc.expectedErr, decodeError(t, rr).Code)
			} else {
				var result model.GradeResult
				decodeBody(t, rr, &result)
				assert.Equal(t, 60.0, result.Score)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestQuizHandler_CreateQuiz(t *testing.T) {
	t.Run("正常系: 作成", func(t *testing.T) {
		svc := new(mocks.QuizService)
		req := &model.CreateQuizRequest{
			Title: "確認テスト",
			Questions: []model.CreateQuestionInput{
				{Prompt: "1+1?", Choices: []string{"1", "2"}, CorrectIndex: intPtr(1)},
			},
		}
		svc.On("CreateQuiz", mock.Anything, uint(3), req, instructorIdentity).
			Return(&model.QuizView{ID: 4, CourseID: 3, Title: "確認テスト", Questions: []model.QuizQuestionView{{ID: 1, Prompt: "1+1?", Choices: []string{"1", "2"}, Position: 1}}}, nil).Once()

		rr := sendRequest(t, newQuizRouter(svc, instructorIdentity), http.MethodPost, "/courses/3/quizzes", req)

		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "correct_index")
		svc.AssertExpectations(t)
	})

	t.Run("異常系: 選択肢が1つだけ", func(t *testing.T) {
		svc := new(mocks.QuizService)
		req := model.CreateQuizRequest{
			Title:     "確認テスト",
			Questions: []model.CreateQuestionInput{{Prompt: "?", Choices: []string{"only"}, CorrectIndex: intPtr(0)}},
		}

		rr := sendRequest(t, newQuizRouter(svc, instructorIdentity), http.MethodPost, "/courses/3/quizzes", req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Code)
		svc.AssertNotCalled(t, "CreateQuiz", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestQuizHandler_GetLatestSubmission(t *testing.T) {
	t.Run("提出なしは404", func(t *testing.T) {
		svc := new(mocks.QuizService)
		svc.On("GetLatestSubmission", mock.Anything, uint(4), uint(7)).Return(nil, nil).Once()

		rr := sendRequest(t, newQuizRouter(svc, studentIdentity), http.MethodGet, "/quizzes/4/submissions/latest", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "SUBMISSION_NOT_FOUND", decodeError(t, rr).Code)
		svc.AssertExpectations(t)
	})

	t.Run("最新の提出を返す", func(t *testing.T) {
		svc := new(mocks.QuizService)
		svc.On("GetLatestSubmission", mock.Anything, uint(4), uint(7)).
			Return(&model.QuizSubmission{ID: 9, QuizID: 4, UserID: 7, Answers: []int{0, 1}, Score: 50}, nil).Once()

		rr := sendRequest(t, newQuizRouter(svc, studentIdentity), http.MethodGet, "/quizzes/4/submissions/latest", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var sub model.QuizSubmission
		decodeBody(t, rr, &sub)
		assert.Equal(t, uint(9), sub.ID)
		assert.Equal(t, 50.0, sub.Score)
		svc.AssertExpectations(t)
	})
}

func TestQuizHandler_ListSubmissions(t *testing.T) {
	t.Run("0件は空配列", func(t *testing.T) {
		svc := new(mocks.QuizService)
		svc.On("ListSubmissions", mock.Anything, uint(4), uint(1), model.RoleInstructor).Return(nil, nil).Once()

		rr := sendRequest(t, newQuizRouter(svc, instructorIdentity), http.MethodGet, "/quizzes/4/submissions", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("他人の講座は403", func(t *testing.T) {
		svc := new(mocks.QuizService)
		svc.On("ListSubmissions", mock.Anything, uint(4), uint(1), model.RoleInstructor).
			Return(nil, model.NewAppError("FORBIDDEN", "You can only view submissions for your own courses", "", model.ErrForbidden)).Once()

		rr := sendRequest(t, newQuizRouter(svc, instructorIdentity), http.MethodGet, "/quizzes/4/submissions", nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		svc.AssertExpectations(t)
	})
}

func TestQuizHandler_GetQuiz(t *testing.T) {
	svc := new(mocks.QuizService)
	svc.On("GetQuiz", mock.Anything, uint(4)).Return(nil, model.NewAppError(model.QuizErrNotFound, "Quiz not found", "", model.ErrNotFound)).Once()

	rr := sendRequest(t, newQuizRouter(svc, studentIdentity), http.MethodGet, "/quizzes/4", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, model.QuizErrNotFound, decodeError(t, rr).Code)
	svc.AssertExpectations(t)
}
