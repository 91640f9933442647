package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/internal/polls"
)

const noChoiceMessage = "You didn't select a choice."

// Vote counts a vote and redirects to the results page. A missing or foreign choice
// re-renders the detail page with an error.
func (pc *PollController) Vote(c *gin.Context) {
	questionID, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}

	choiceID, err := strconv.ParseInt(c.PostForm("choice"), 10, 64)
	if err != nil {
		pc.renderQuestion(c, "detail.html", http.StatusOK, noChoiceMessage)
		return
	}

	if _, err := pc.polls.Vote(c.Request.Context(), questionID, choiceID); err != nil {
		if errors.Is(err, polls.ErrInvalidChoice) {
			pc.renderQuestion(c, "detail.html", http.StatusOK, noChoiceMessage)
			return
		}
		handleLookupError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/polls/%d/results/", questionID))
}
