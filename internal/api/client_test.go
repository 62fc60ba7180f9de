package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/api"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/gateway"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(gateway.NewGateway(srv.URL))
}

func TestProblemEndpoints(t *testing.T) {
	var lastMethod, lastPath string
	r := mux.NewRouter()
	record := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			lastMethod, lastPath = req.Method, req.URL.Path
			h(w, req)
		}
	}

	r.HandleFunc("/api/problem/list", record(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode([]model.ProblemSummary{
			{ProblemID: "1000", Title: "A+B"},
			{ProblemID: "1001", Title: "Fibonacci"},
		})
	})).Methods(http.MethodPost)
	r.HandleFunc("/api/problem/", record(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("{}"))
	})).Methods(http.MethodPut)
	r.HandleFunc("/api/problem/{id}", record(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			json.NewEncoder(w).Encode(model.Problem{
				ProblemID: mux.Vars(req)["id"],
				Title:     "A+B",
				TestCases: []model.TestCase{{Input: "1 2", Output: "3", Example: true}},
				TimeLimit: 1000, MemoryLimit: 262144,
			})
		default:
			w.Write([]byte("{}"))
		}
	})).Methods(http.MethodPost, http.MethodPatch, http.MethodDelete)

	client := newTestClient(t, r)
	ctx := context.Background()

	problems, err := client.ListProblems(ctx)
	if err != nil {
		t.Fatalf("ListProblems() failed: %v", err)
	}
	if len(problems) != 2 || problems[0].ProblemID != "1000" {
		t.Fatalf("ListProblems() = %+v", problems)
	}

	problem, err := client.GetProblem(ctx, "1000")
	if err != nil {
		t.Fatalf("GetProblem() failed: %v", err)
	}
	if problem.ProblemID != "1000" || len(problem.TestCases) != 1 || !problem.TestCases[0].Example {
		t.Fatalf("GetProblem() = %+v", problem)
	}

	if err := client.CreateProblem(ctx, model.Problem{ProblemID: "2000"}); err != nil {
		t.Fatalf("CreateProblem() failed: %v", err)
	}
	if lastMethod != http.MethodPut || lastPath != "/api/problem/" {
		t.Fatalf("CreateProblem() sent %s %s", lastMethod, lastPath)
	}

	if err := client.UpdateProblem(ctx, "2000", model.Problem{ProblemID: "2000"}); err != nil {
		t.Fatalf("UpdateProblem() failed: %v", err)
	}
	if lastMethod != http.MethodPatch || lastPath != "/api/problem/2000" {
		t.Fatalf("UpdateProblem() sent %s %s", lastMethod, lastPath)
	}

	if err := client.DeleteProblem(ctx, "2000"); err != nil {
		t.Fatalf("DeleteProblem() failed: %v", err)
	}
	if lastMethod != http.MethodDelete || lastPath != "/api/problem/2000" {
		t.Fatalf("DeleteProblem() sent %s %s", lastMethod, lastPath)
	}
}

func TestSubmitPayloadShape(t *testing.T) {
	var got map[string]any
	r := mux.NewRouter()
	r.HandleFunc("/api/judge/", func(w http.ResponseWriter, req *http.Request) {
		json.NewDecoder(req.Body).Decode(&got)
		w.Write([]byte("{}"))
	}).Methods(http.MethodPut)

	client := newTestClient(t, r)
	if err := client.Submit(context.Background(), "1000", model.LangCPP, "int main(){}"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if got["problemId"] != "1000" || got["language"] != "CPP" || got["source"] != "int main(){}" {
		t.Fatalf("submit payload = %+v", got)
	}
}

func TestHistoryDecoding(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/judge/history", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[
			{"judgeId":"j1","username":"tester01","problemId":"1000","language":"PYTHON",
			 "sourceLength":42,"at":"2026-08-30T12:00:00Z","result":{"type":"CORRECT","time":120,"memory":2048}},
			{"judgeId":"j2","username":"tester01","problemId":"1001","language":"C",
			 "sourceLength":10,"at":"2026-08-30T12:05:00Z","result":{"type":"PROCESSING","message":"3/10"}}
		]`))
	}).Methods(http.MethodPost)

	client := newTestClient(t, r)
	records, err := client.History(context.Background())
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("History() returned %d records", len(records))
	}
	if records[0].JudgeID != "j1" || !records[0].Result.HasMetrics() || records[0].Result.Memory != 2048 {
		t.Fatalf("record 0 = %+v", records[0])
	}
	if records[1].Result.Type != model.ResultProcessing || records[1].Result.Message != "3/10" {
		t.Fatalf("record 1 = %+v", records[1])
	}
	if records[1].Result.HasMetrics() {
		t.Fatal("non-CORRECT result claims metrics")
	}
}

func TestIsAdmin(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/isAdmin", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Username string `json:"username"`
		}
		json.NewDecoder(req.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]bool{"admin": body.Username == "root01admin"})
	}).Methods(http.MethodPost)

	client := newTestClient(t, r)
	ctx := context.Background()

	admin, err := client.IsAdmin(ctx, "root01admin")
	if err != nil || !admin {
		t.Fatalf("IsAdmin(root01admin) = %v, %v", admin, err)
	}
	admin, err = client.IsAdmin(ctx, "plainuser1")
	if err != nil || admin {
		t.Fatalf("IsAdmin(plainuser1) = %v, %v", admin, err)
	}
}
