package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestLogin(t *testing.T) {
	r, _ := testServer(t)

	if w := doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "bad"}); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status %d, want 401", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "admin"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing password: status %d, want 400", w.Code)
	}
	if token := login(t, r, "admin", "admin123"); token == "" {
		t.Error("expected a token")
	}
}

func TestAPIRequiresToken(t *testing.T) {
	r, _ := testServer(t)
	if w := doJSON(t, r, http.MethodGet, "/api/questions", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestAPICreateAndRead(t *testing.T) {
	r, _ := testServer(t)
	admin := login(t, r, "admin", "admin123")
	user := login(t, r, "user1", "pass1")

	w := doJSON(t, r, http.MethodPost, "/api/questions", user, gin.H{"question_text": "Nope?"})
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin create: status %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/questions", admin, gin.H{
		"question_text": "Past question.",
		"days":          -2,
		"choices":       []string{"Yes", "No"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID      int64 `json:"id"`
			Choices []struct {
				ChoiceText string `json:"choice_text"`
			} `json:"choices"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(created.Data.Choices) != 2 {
		t.Errorf("expected 2 choices, got %+v", created.Data.Choices)
	}

	w = doJSON(t, r, http.MethodPost, "/api/questions", admin, gin.H{"question_text": "Future question.", "days": 5})
	if w.Code != http.StatusCreated {
		t.Fatalf("create future: status %d", w.Code)
	}
	var future struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &future); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/questions", user, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var list struct {
		Questions []struct {
			QuestionText string `json:"question_text"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Questions) != 1 || list.Questions[0].QuestionText != "Past question." {
		t.Errorf("unexpected list %+v", list.Questions)
	}

	path := "/api/questions/" + strconv.FormatInt(created.Data.ID, 10)
	if w := doJSON(t, r, http.MethodGet, path, user, nil); w.Code != http.StatusOK {
		t.Errorf("get past: status %d", w.Code)
	}
	path = "/api/questions/" + strconv.FormatInt(future.Data.ID, 10)
	if w := doJSON(t, r, http.MethodGet, path, user, nil); w.Code != http.StatusNotFound {
		t.Errorf("get future: status %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, path+"/choices", admin, gin.H{"choice_text": "Maybe"})
	if w.Code != http.StatusCreated {
		t.Errorf("add choice to future question: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/questions/999/choices", admin, gin.H{"choice_text": "Maybe"})
	if w.Code != http.StatusNotFound {
		t.Errorf("add choice to missing question: status %d, want 404", w.Code)
	}
}

func TestAPICreateValidation(t *testing.T) {
	r, _ := testServer(t)
	admin := login(t, r, "admin", "admin123")

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing text", gin.H{"days": 1}},
		{"blank text", gin.H{"question_text": "   "}},
		{"pub_date and days", gin.H{"question_text": "x", "days": 1, "pub_date": "2024-01-01T00:00:00Z"}},
	}
	for _, tt := range tests {
		if w := doJSON(t, r, http.MethodPost, "/api/questions", admin, tt.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", tt.name, w.Code)
		}
	}
}
