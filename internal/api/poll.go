package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

type Handler struct {
	polls     *polls.Service
	jwtSecret string
}

func NewHandler(s *polls.Service, jwtSecret string) *Handler {
	return &Handler{polls: s, jwtSecret: jwtSecret}
}

type createQuestionInput struct {
	QuestionText string     `json:"question_text" binding:"required"`
	PubDate      *time.Time `json:"pub_date"`
	Days         *int       `json:"days"` // offset from now, negative is the past
	Choices      []string   `json:"choices"`
}

type addChoiceInput struct {
	ChoiceText string `json:"choice_text" binding:"required"`
}

type questionDetail struct {
	models.Question
	Choices []models.Choice `json:"choices"`
}

func (h *Handler) ListQuestionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	questions, err := h.polls.Latest(c.Request.Context(), page)
	if err != nil {
		internalError(c, "Failed to fetch questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *Handler) GetQuestionByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	ctx := c.Request.Context()
	q, err := h.polls.Question(ctx, id)
	if err != nil {
		lookupError(c, err)
		return
	}
	choices, err := h.polls.Choices(ctx, id)
	if err != nil {
		lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": questionDetail{Question: q, Choices: choices}})
}

func (h *Handler) CreateQuestionHandler(c *gin.Context) {
	var in createQuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.PubDate != nil && in.Days != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pass either pub_date or days, not both"})
		return
	}

	ctx := c.Request.Context()
	var (
		q   models.Question
		err error
	)
	switch {
	case in.PubDate != nil:
		q, err = h.polls.CreateQuestion(ctx, in.QuestionText, *in.PubDate)
	case in.Days != nil:
		q, err = h.polls.CreateQuestionInDays(ctx, in.QuestionText, *in.Days)
	default:
		q, err = h.polls.CreateQuestion(ctx, in.QuestionText, h.polls.Now())
	}
	if err != nil {
		writeError(c, "Failed to create question", err)
		return
	}

	choices := make([]models.Choice, 0, len(in.Choices))
	for _, text := range in.Choices {
		choice, err := h.polls.AddChoice(ctx, q.ID, text)
		if err != nil {
			writeError(c, "Failed to add choice", err)
			return
		}
		choices = append(choices, choice)
	}

	log.Printf("question %d created by %s", q.ID, c.GetString("username"))
	c.JSON(http.StatusCreated, gin.H{"data": questionDetail{Question: q, Choices: choices}})
}

func (h *Handler) AddChoiceHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	var in addChoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	choice, err := h.polls.AddChoice(c.Request.Context(), id, in.ChoiceText)
	if err != nil {
		writeError(c, "Failed to add choice", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": choice})
}

func lookupError(c *gin.Context, err error) {
	if errors.Is(err, errorz.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	internalError(c, "Failed to fetch question", err)
}

func writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, polls.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
	case errors.Is(err, errorz.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	default:
		internalError(c, msg, err)
	}
}

func internalError(c *gin.Context, msg string, err error) {
	log.Printf("%s [%s]: %v", msg, c.GetString("requestID"), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
