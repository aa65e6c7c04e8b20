package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tusharsraj1907-hash/AIrena/controller"
	"github.com/tusharsraj1907-hash/AIrena/mail"
	"github.com/tusharsraj1907-hash/AIrena/middleware"
	"github.com/tusharsraj1907-hash/AIrena/model"
	"github.com/tusharsraj1907-hash/AIrena/receipt"
	"github.com/tusharsraj1907-hash/AIrena/routes"
	"github.com/tusharsraj1907-hash/AIrena/service"
)

const testSecret = "test-secret"

type noopMailer struct{}

func (noopMailer) Send(to, subject, html string, attachments ...mail.Attachment) error {
	return nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	svc *service.PaymentService
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Hackathon{},
		&model.Registration{},
		&model.Payment{},
	))

	receipts, err := receipt.NewService(t.TempDir())
	require.NoError(t, err)

	svc := service.NewPaymentService(db, receipts, noopMailer{}, nil, nil)

	app := fiber.New()
	auth := middleware.AuthRequired(testSecret)
	routes.RegisterPaymentRoutes(app, controller.NewPaymentController(svc, receipts), auth)
	routes.RegisterHackathonRoutes(app, controller.NewHackathonController(db), auth)
	routes.RegisterAuthRoutes(app, controller.NewAuthController(db, testSecret), auth)

	return &testEnv{app: app, db: db, svc: svc}
}

func (e *testEnv) createUser(t *testing.T, name, email string) model.User {
	t.Helper()
	user := model.User{Name: name, Email: email, Role: "user"}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user model.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   float64(user.ID),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func request(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	env := setup(t)
	resp := request(t, env.app, "POST", "/api/payments/create-order", "", nil)
	require.Equal(t, 401, resp.StatusCode)
}

func TestCreateOrder_ReturnsPendingPayment(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	resp := request(t, env.app, "POST", "/api/payments/create-order", tokenFor(t, user), nil)
	require.Equal(t, 201, resp.StatusCode)

	var body struct {
		PaymentID   uint   `json:"payment_id"`
		Amount      int64  `json:"amount"`
		Status      string `json:"status"`
		MockOrderID string `json:"mock_order_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, service.HackathonCreationFee, body.Amount)
	require.Equal(t, model.PaymentPending, body.Status)
	require.NotEmpty(t, body.MockOrderID)
}

func TestCreateParticipantOrder_UnknownHackathon(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	resp := request(t, env.app, "POST", "/api/payments/create-participant-order",
		tokenFor(t, user), fiber.Map{"hackathon_id": 9999})
	require.Equal(t, 404, resp.StatusCode)
}

func TestVerifyParticipantPayment_BadReference(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	order, err := env.svc.CreateOrder(user.ID)
	require.NoError(t, err)

	resp := request(t, env.app, "POST", "/api/payments/verify-participant-payment",
		tokenFor(t, user), fiber.Map{"payment_id": order.PaymentID, "provider_payment_id": "junk123"})
	require.Equal(t, 400, resp.StatusCode)

	var stored model.Payment
	require.NoError(t, env.db.First(&stored, order.PaymentID).Error)
	require.Equal(t, model.PaymentFailed, stored.Status)
}

func TestVerifyParticipantPayment_UnknownPayment(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	resp := request(t, env.app, "POST", "/api/payments/verify-participant-payment",
		tokenFor(t, user), fiber.Map{"payment_id": 424242, "provider_payment_id": "pay_abc"})
	require.Equal(t, 404, resp.StatusCode)
}

func TestHistory_ReturnsOwnPaymentsOnly(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")
	other := env.createUser(t, "Ben Ortiz", "ben@example.com")

	_, err := env.svc.CreateOrder(user.ID)
	require.NoError(t, err)
	_, err = env.svc.CreateOrder(other.ID)
	require.NoError(t, err)

	resp := request(t, env.app, "GET", "/api/payments/history", tokenFor(t, user), nil)
	require.Equal(t, 200, resp.StatusCode)

	var list []service.HistoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
}

func TestDownloadReceipt_OwnershipHidesExistence(t *testing.T) {
	env := setup(t)
	owner := env.createUser(t, "Asha Rao", "asha@example.com")
	stranger := env.createUser(t, "Ben Ortiz", "ben@example.com")

	order, err := env.svc.CreateOrder(owner.ID)
	require.NoError(t, err)

	target := fmt.Sprintf("/api/payments/receipt/%d", order.PaymentID)
	resp := request(t, env.app, "GET", target, tokenFor(t, stranger), nil)
	require.Equal(t, 404, resp.StatusCode)
}

func TestDownloadReceipt_LazyGeneration(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	order, err := env.svc.CreateOrder(user.ID)
	require.NoError(t, err)
	payment, err := env.svc.VerifyPayment(order.PaymentID, "pay_abc123")
	require.NoError(t, err)

	target := fmt.Sprintf("/api/payments/receipt/%d", payment.ID)
	resp := request(t, env.app, "GET", target, tokenFor(t, user), nil)
	require.Equal(t, 200, resp.StatusCode)

	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Equal(t,
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, payment.InvoiceID),
		resp.Header.Get("Content-Disposition"))
	require.NotEmpty(t, resp.Header.Get("Content-Length"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestDownloadReceipt_UnknownPayment(t *testing.T) {
	env := setup(t)
	user := env.createUser(t, "Asha Rao", "asha@example.com")

	resp := request(t, env.app, "GET", "/api/payments/receipt/999999", tokenFor(t, user), nil)
	require.Equal(t, 404, resp.StatusCode)
}
