package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lotola/observatoire/core/commune"
	"github.com/lotola/observatoire/core/user"
	testutil "github.com/lotola/observatoire/tests"
)

func Test_communeApi(t *testing.T) {
	app := initApp()

	admin := testutil.CreateUser(t, app.userRepo, "Admin", "admin@test.cd", "LePassw0rd", user.RoleAdmin)
	agent := testutil.CreateUser(t, app.userRepo, "Agent", "agent@test.cd", "LePassw0rd", user.RoleAgent)

	adminToken := getToken(t, admin)
	agentToken := getToken(t, agent)

	tests := []httpTest{
		{
			name:     "create: agent is refused",
			method:   http.MethodPost,
			path:     "/v1/communes",
			body:     marshallObj(t, commune.NewCommune{Name: "Bandal", Latitude: "-4.33", Longitude: "15.28"}),
			token:    agentToken,
			wantCode: http.StatusForbidden,
			wantData: []byte(`{"error": "permission denied"}`),
		},
		{
			name:     "create: missing coordinates",
			method:   http.MethodPost,
			path:     "/v1/communes",
			body:     marshallObj(t, commune.NewCommune{Name: "Bandal"}),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"latitude": "this field is required", "longitude": "this field is required"}`),
		},
		{
			name:     "create: non-numeric coordinates",
			method:   http.MethodPost,
			path:     "/v1/communes",
			body:     marshallObj(t, commune.NewCommune{Name: "Bandal", Latitude: "nord", Longitude: "est"}),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"latitude": "must be a valid number", "longitude": "must be a valid number"}`),
		},
		{
			name:     "create: admin",
			method:   http.MethodPost,
			path:     "/v1/communes",
			body:     marshallObj(t, commune.NewCommune{Name: "Bandal", Latitude: "-4.33", Longitude: "15.28"}),
			token:    adminToken,
			wantCode: http.StatusCreated,
		},
		{
			name:     "query: any authenticated session",
			method:   http.MethodGet,
			path:     "/v1/communes",
			token:    agentToken,
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)

			if tt.wantData == nil {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v: %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				if tt.method == http.MethodPost {
					var c commune.Commune
					if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
						t.Fatalf("unmarshalling response failed: %v", err)
					}
					if c.ID == "" || !c.HasCoordinates() {
						t.Errorf("unexpected created commune: %s", rec.Body.String())
					}
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
