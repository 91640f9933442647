package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

// PollController serves the HTML pages under /polls/.
type PollController struct {
	polls *polls.Service
}

func NewPollController(s *polls.Service) *PollController {
	return &PollController{polls: s}
}

func (pc *PollController) Index(c *gin.Context) {
	page := pageParam(c)
	questions, err := pc.polls.Latest(c.Request.Context(), page)
	if err != nil {
		serverError(c, "list questions", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"latest_question_list": questions,
		"has_next":             len(questions) == pc.polls.PageSize(),
		"next_page":            page + 1,
	})
}

func (pc *PollController) Detail(c *gin.Context) {
	pc.renderQuestion(c, "detail.html", http.StatusOK, "")
}

func (pc *PollController) Results(c *gin.Context) {
	pc.renderQuestion(c, "results.html", http.StatusOK, "")
}

func (pc *PollController) renderQuestion(c *gin.Context, page string, status int, errorMessage string) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}

	ctx := c.Request.Context()
	question, err := pc.polls.Question(ctx, id)
	if err != nil {
		handleLookupError(c, err)
		return
	}
	choices, err := pc.polls.Choices(ctx, id)
	if err != nil {
		handleLookupError(c, err)
		return
	}

	data := gin.H{"question": question, "choices": choices}
	if errorMessage != "" {
		data["error_message"] = errorMessage
	}
	c.HTML(status, page, data)
}

func handleLookupError(c *gin.Context, err error) {
	if errors.Is(err, errorz.ErrNotFound) {
		notFound(c)
		return
	}
	serverError(c, "load question", err)
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"message": "No Question matches the given query."})
}

func serverError(c *gin.Context, op string, err error) {
	log.Printf("%s [%s]: %v", op, c.GetString("requestID"), err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
