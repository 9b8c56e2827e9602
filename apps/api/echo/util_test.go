package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/lotola/observatoire/core"
	"github.com/lotola/observatoire/core/commune"
	"github.com/lotola/observatoire/core/movement"
	"github.com/lotola/observatoire/core/reason"
	"github.com/lotola/observatoire/core/user"
	emailsvc "github.com/lotola/observatoire/services/email"
	"github.com/lotola/observatoire/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// testLogger drops everything; handler tests assert on responses, not logs.
type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

type testApp struct {
	server Server

	userRepo     user.Repository
	communeRepo  commune.Repository
	reasonRepo   reason.Repository
	movementRepo movement.Repository

	userSvc *user.Service
}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:                  true,
		AppName:                   "Observatoire des Flux",
		SecretKey:                 []byte("secret"),
		DefaultFromEmail:          mail.Address{Name: "Observatoire des Flux", Address: "noreply@localhost"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func initApp() *testApp {
	conf := testConfig()

	userRepo := dummy.NewUserRepository()
	communeRepo := dummy.NewCommuneRepository()
	reasonRepo := dummy.NewReasonRepository()
	movementRepo := dummy.NewMovementRepository()

	reasonSvc := reason.NewService(reasonRepo)
	userSvc := user.NewService(userRepo, emailsvc.NewConsoleServiceMock(conf), conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      testLogger{},
		UserSvc:     userSvc,
		CommuneSvc:  commune.NewService(communeRepo),
		ReasonSvc:   reasonSvc,
		MovementSvc: movement.NewService(movementRepo, reasonSvc),
		Validate:    validate,
		Translator:  translator,
	})

	return &testApp{
		server:       server,
		userRepo:     userRepo,
		communeRepo:  communeRepo,
		reasonRepo:   reasonRepo,
		movementRepo: movementRepo,
		userSvc:      userSvc,
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	sess := user.Session{
		User:        usr,
		Role:        user.NormalizeRole(usr.Role),
		DisplayName: usr.DisplayName(),
	}
	token, err := GenerateToken(GetUserClaims(sess))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
