package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/models"
	"codetidbit/internal/services"
)

// QAHandler handles the Q&A endpoints for both tidbit kinds. Every route
// carries :tidbitType/:id to target the tidbit's QA document.
type QAHandler struct {
	qa *services.QAService
}

// NewQAHandler creates a new QA handler
func NewQAHandler(qa *services.QAService) *QAHandler {
	return &QAHandler{qa: qa}
}

// Get fetches the tidbit's full QA document
// GET /qa/:tidbitType/:id
func (h *QAHandler) Get(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	qa, err := h.qa.GetQA(c.Context(), tp, middleware.RequestingUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(qa)
}

// AskQuestion appends a question
// POST /qa/:tidbitType/:id/askQuestion
func (h *QAHandler) AskQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.QuestionTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	question, err := h.qa.AskQuestion(c.Context(), tp, middleware.RequestingUser(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// EditQuestion replaces a question's text, author only
// POST /qa/:tidbitType/:id/editQuestion/:questionID
func (h *QAHandler) EditQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.QuestionTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.EditQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "question updated"})
}

// DeleteQuestion removes a question and everything under it, author only
// POST /qa/:tidbitType/:id/deleteQuestion/:questionID
func (h *QAHandler) DeleteQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	err = h.qa.DeleteQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "question deleted"})
}

// AnswerQuestion appends an answer under a question
// POST /qa/:tidbitType/:id/answerQuestion/:questionID
func (h *QAHandler) AnswerQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.AnswerTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	answer, err := h.qa.AnswerQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

// EditAnswer replaces an answer's text, author only
// POST /qa/:tidbitType/:id/editAnswer/:answerID
func (h *QAHandler) EditAnswer(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.AnswerTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.EditAnswer(c.Context(), tp, middleware.RequestingUser(c), c.Params("answerID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "answer updated"})
}

// DeleteAnswer removes an answer and its comments, author only
// POST /qa/:tidbitType/:id/deleteAnswer/:answerID
func (h *QAHandler) DeleteAnswer(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	err = h.qa.DeleteAnswer(c.Context(), tp, middleware.RequestingUser(c), c.Params("answerID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "answer deleted"})
}

// CommentOnQuestion appends a comment under a question
// POST /qa/:tidbitType/:id/comment/question/:questionID
func (h *QAHandler) CommentOnQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.CommentTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	comment, err := h.qa.CommentOnQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// EditQuestionComment replaces a question comment's text, author only
// POST /qa/:tidbitType/:id/editComment/question/:commentID
func (h *QAHandler) EditQuestionComment(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.CommentTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.EditQuestionComment(c.Context(), tp, middleware.RequestingUser(c), c.Params("commentID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment updated"})
}

// DeleteQuestionComment removes a question comment, author only
// POST /qa/:tidbitType/:id/deleteComment/question/:commentID
func (h *QAHandler) DeleteQuestionComment(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	err = h.qa.DeleteQuestionComment(c.Context(), tp, middleware.RequestingUser(c), c.Params("commentID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}

// CommentOnAnswer appends a comment under an answer
// POST /qa/:tidbitType/:id/comment/answer/:answerID
func (h *QAHandler) CommentOnAnswer(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.CommentTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	comment, err := h.qa.CommentOnAnswer(c.Context(), tp, middleware.RequestingUser(c), c.Params("answerID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// EditAnswerComment replaces an answer comment's text, author only
// POST /qa/:tidbitType/:id/editComment/answer/:commentID
func (h *QAHandler) EditAnswerComment(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.CommentTextRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.EditAnswerComment(c.Context(), tp, middleware.RequestingUser(c), c.Params("commentID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment updated"})
}

// DeleteAnswerComment removes an answer comment, author only
// POST /qa/:tidbitType/:id/deleteComment/answer/:commentID
func (h *QAHandler) DeleteAnswerComment(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	err = h.qa.DeleteAnswerComment(c.Context(), tp, middleware.RequestingUser(c), c.Params("commentID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}

// RateQuestion records a vote on a question
// POST /qa/:tidbitType/:id/rateQuestion/:questionID
func (h *QAHandler) RateQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.RateRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.RateQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "vote recorded"})
}

// RateAnswer records a vote on an answer
// POST /qa/:tidbitType/:id/rateAnswer/:answerID
func (h *QAHandler) RateAnswer(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.RateRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.RateAnswer(c.Context(), tp, middleware.RequestingUser(c), c.Params("answerID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "vote recorded"})
}

// PinQuestion sets a question's pinned flag, tidbit author only
// POST /qa/:tidbitType/:id/pinQuestion/:questionID
func (h *QAHandler) PinQuestion(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.PinRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.PinQuestion(c.Context(), tp, middleware.RequestingUser(c), c.Params("questionID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pin updated"})
}

// PinAnswer sets an answer's pinned flag, tidbit author only
// POST /qa/:tidbitType/:id/pinAnswer/:answerID
func (h *QAHandler) PinAnswer(c *fiber.Ctx) error {
	tp, err := tidbitPointerFromParams(c)
	if err != nil {
		return writeError(c, err)
	}

	var req models.PinRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err)
	}

	err = h.qa.PinAnswer(c.Context(), tp, middleware.RequestingUser(c), c.Params("answerID"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pin updated"})
}
