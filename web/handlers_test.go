package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Emazov/myach-pro-tier-list-backend/controller/mockcontroller"
	"github.com/Emazov/myach-pro-tier-list-backend/db"
	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

const (
	adminTelegramID = int64(42)
	userTelegramID  = int64(1001)
)

func newTestServer(t *testing.T) (*httptest.Server, *mockcontroller.C) {
	t.Helper()

	ctrl := &mockcontroller.C{}
	srv := httptest.NewServer(getRouter(ctrl, newRender()))
	t.Cleanup(srv.Close)
	return srv, ctrl
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("error encoding request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("error building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("wanted 200, got %d", resp.StatusCode)
	}
}

func TestSubmitVote_created(t *testing.T) {
	srv, ctrl := newTestServer(t)

	vote := &model.Vote{ID: 1, PlayerID: 5, UserID: 7, CategoryID: 2}
	ctrl.On("SubmitVote", mock.Anything, userTelegramID, int32(5), int32(2)).Return(vote, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/votes/", map[string]any{
		"telegramId": userTelegramID,
		"playerId":   5,
		"categoryId": 2,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("wanted 201, got %d", resp.StatusCode)
	}

	var got model.Vote
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.ID != vote.ID {
		t.Errorf("wrong vote in response: %+v", got)
	}
}

func TestSubmitVote_validation(t *testing.T) {
	srv, ctrl := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing telegramId", map[string]any{"playerId": 5, "categoryId": 2}},
		{"missing playerId", map[string]any{"telegramId": userTelegramID, "categoryId": 2}},
		{"missing categoryId", map[string]any{"telegramId": userTelegramID, "playerId": 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/votes/", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("wanted 400, got %d", resp.StatusCode)
			}
		})
	}
	ctrl.AssertNotCalled(t, "SubmitVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitVote_badJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/votes/", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("wanted 400, got %d", resp.StatusCode)
	}
}

func TestSubmitVote_errorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"category full", db.ErrCategoryFull, http.StatusConflict},
		{"player missing", db.ErrPlayerNotFound, http.StatusNotFound},
		{"category missing", db.ErrCategoryNotFound, http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, ctrl := newTestServer(t)
			ctrl.On("SubmitVote", mock.Anything, userTelegramID, int32(5), int32(2)).Return(nil, tc.err)

			resp := doJSON(t, http.MethodPost, srv.URL+"/api/votes/", map[string]any{
				"telegramId": userTelegramID,
				"playerId":   5,
				"categoryId": 2,
			})
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("wanted %d, got %d", tc.wantStatus, resp.StatusCode)
			}

			var body apiError
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("error decoding error body: %v", err)
			}
			if body.Error == "" {
				t.Errorf("error body is empty")
			}
			// Internal details must not leak on a 500.
			if tc.wantStatus == http.StatusInternalServerError && body.Error != "internal server error" {
				t.Errorf("internal error leaked: %q", body.Error)
			}
		})
	}
}

func TestAllVotes_adminOnly(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("IsAdmin", userTelegramID).Return(false)
	ctrl.On("IsAdmin", adminTelegramID).Return(true)
	ctrl.On("AllVotes", mock.Anything).Return([]model.VoteDetail{}, nil)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/votes/?telegramId=%d", srv.URL, userTelegramID), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin wanted 403, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/votes/", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing telegramId wanted 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/votes/?telegramId=%d", srv.URL, adminTelegramID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin wanted 200, got %d", resp.StatusCode)
	}
}

func TestNextPlayer_exhausted(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("NextPlayerForVoting", mock.Anything, userTelegramID, int32(0)).Return(nil, nil)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/votes/players/next?telegramId=%d", srv.URL, userTelegramID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("wanted 404 when no players remain, got %d", resp.StatusCode)
	}
}

func TestNextPlayer_releaseFilter(t *testing.T) {
	srv, ctrl := newTestServer(t)

	p := &model.Player{ID: 9, Name: "nine", ReleaseID: 3}
	ctrl.On("NextPlayerForVoting", mock.Anything, userTelegramID, int32(3)).Return(p, nil)

	url := fmt.Sprintf("%s/api/votes/players/next?telegramId=%d&releaseId=3", srv.URL, userTelegramID)
	resp := doJSON(t, http.MethodGet, url, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wanted 200, got %d", resp.StatusCode)
	}
	ctrl.AssertExpectations(t)
}

func TestGetCategory_notFound(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("GetCategory", mock.Anything, int32(99)).Return(nil, db.ErrCategoryNotFound)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/categories/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("wanted 404, got %d", resp.StatusCode)
	}
}

func TestCreatePlayer_adminFlow(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("IsAdmin", adminTelegramID).Return(true)
	ctrl.On("IsAdmin", userTelegramID).Return(false)
	created := &model.Player{ID: 1, Name: "new", ReleaseID: 2}
	ctrl.On("CreatePlayer", mock.Anything, mock.MatchedBy(func(p *model.Player) bool {
		return p.Name == "new" && p.ReleaseID == 2
	})).Return(created, nil)

	body := map[string]any{"telegramId": adminTelegramID, "name": "new", "releaseId": 2}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/players/", body)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("admin create wanted 201, got %d", resp.StatusCode)
	}

	body["telegramId"] = userTelegramID
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/players/", body)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin create wanted 403, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/players/", map[string]any{"telegramId": adminTelegramID, "name": "no release"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("create without releaseId wanted 400, got %d", resp.StatusCode)
	}
}

func TestCreatePlayer_releaseFull(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("IsAdmin", adminTelegramID).Return(true)
	ctrl.On("CreatePlayer", mock.Anything, mock.Anything).Return(nil, db.ErrReleaseFull)

	body := map[string]any{"telegramId": adminTelegramID, "name": "extra", "releaseId": 2}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/players/", body)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("full release wanted 409, got %d", resp.StatusCode)
	}
}

func TestDeleteRelease(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("IsAdmin", adminTelegramID).Return(true)
	ctrl.On("DeleteRelease", mock.Anything, int32(3)).Return(nil)
	ctrl.On("DeleteRelease", mock.Anything, int32(99)).Return(db.ErrReleaseNotFound)

	url := fmt.Sprintf("%s/api/releases/3?telegramId=%d", srv.URL, adminTelegramID)
	resp := doJSON(t, http.MethodDelete, url, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("wanted 200, got %d", resp.StatusCode)
	}

	url = fmt.Sprintf("%s/api/releases/99?telegramId=%d", srv.URL, adminTelegramID)
	resp = doJSON(t, http.MethodDelete, url, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing release wanted 404, got %d", resp.StatusCode)
	}
}

func TestTelegramWebhook(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("HandleTelegramUpdate", mock.Anything, mock.Anything).Return(nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/telegram/webhook", map[string]any{
		"update_id": 1,
		"message":   map[string]any{"text": "/start", "from": map[string]any{"id": userTelegramID}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("wanted 200, got %d", resp.StatusCode)
	}
	ctrl.AssertExpectations(t)
}

func TestTelegramWebhook_handlerErrorStillAcks(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("HandleTelegramUpdate", mock.Anything, mock.Anything).Return(errors.New("db down"))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/telegram/webhook", map[string]any{"update_id": 1})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("telegram retries on non-200, wanted 200, got %d", resp.StatusCode)
	}
}

func TestTelegramWebhook_badPayload(t *testing.T) {
	srv, ctrl := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/telegram/webhook", "application/json", strings.NewReader("not json"))
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("wanted 400, got %d", resp.StatusCode)
	}
	ctrl.AssertNotCalled(t, "HandleTelegramUpdate", mock.Anything, mock.Anything)
}

func TestFileURL(t *testing.T) {
	srv, ctrl := newTestServer(t)

	ctrl.On("GetFileURL", mock.Anything, "abc123").Return("https://bucket/abc123?sig", nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/files/url/abc123", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wanted 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if body["url"] != "https://bucket/abc123?sig" {
		t.Errorf("wrong url in response: %q", body["url"])
	}
}

func TestUserStats(t *testing.T) {
	srv, ctrl := newTestServer(t)

	stats := []model.UserCategoryVotes{{ID: 1, Name: "goat", MaxPlaces: 2}}
	ctrl.On("UserVotingStats", mock.Anything, userTelegramID).Return(stats, nil)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/votes/user-stats?telegramId=%d", srv.URL, userTelegramID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wanted 200, got %d", resp.StatusCode)
	}

	var got []model.UserCategoryVotes
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "goat" {
		t.Errorf("wrong stats in response: %+v", got)
	}
}
