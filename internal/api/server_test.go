package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reporter/internal/api"
	"reporter/internal/bot"
	"reporter/internal/report"
	mockreport "reporter/internal/report/mock"
	"reporter/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeBot is an in-memory BotCoordinator.
type fakeBot struct {
	state    bot.State
	startErr error
	starts   int
}

func (f *fakeBot) State() bot.State { return f.state }

func (f *fakeBot) Start(context.Context) error {
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}

	f.state = bot.StateRunning

	return nil
}

func newRouter(t *testing.T, b *fakeBot) (http.Handler, *mockreport.MockReporter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reporter := mockreport.NewMockReporter(ctrl)

	return api.Router(api.Deps{Reporter: reporter, Bot: b}, "/metrics"), reporter
}

func get(t *testing.T, handler http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	return rec.Code, string(body)
}

func TestDirectory_BotNotStarted(t *testing.T) {
	handler, _ := newRouter(t, &fakeBot{state: bot.StateNotStarted})

	code, body := get(t, handler, "/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Directorio de Activación")
	require.Contains(t, body, "INACTIVO")
	require.Contains(t, body, "/iniciar/bot")
}

func TestDirectory_BotRunning(t *testing.T) {
	handler, _ := newRouter(t, &fakeBot{state: bot.StateRunning})

	code, body := get(t, handler, "/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "ACTIVO")
	require.Contains(t, body, "/enviar_pdf")
}

func TestStartBot(t *testing.T) {
	b := &fakeBot{state: bot.StateNotStarted}
	handler, _ := newRouter(t, b)

	code, body := get(t, handler, "/iniciar/bot")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Bot Iniciado")
	require.Equal(t, 1, b.starts)
	require.Equal(t, bot.StateRunning, b.state)
}

func TestStartBot_AlreadyRunning(t *testing.T) {
	b := &fakeBot{
		state:    bot.StateRunning,
		startErr: serrors.KindOnly(serrors.ErrAlreadyStarted),
	}
	handler, _ := newRouter(t, b)

	code, body := get(t, handler, "/iniciar/bot")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "ya estaba activo")
}

func TestStartBot_ConnectionFailure(t *testing.T) {
	b := &fakeBot{state: bot.StateNotStarted, startErr: errors.New("401 unauthorized")}
	handler, _ := newRouter(t, b)

	code, body := get(t, handler, "/iniciar/bot")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Contains(t, body, "Error al iniciar el Bot")
	require.Equal(t, bot.StateNotStarted, b.state)
}

func TestSendReports_RequiresRunningBot(t *testing.T) {
	handler, reporter := newRouter(t, &fakeBot{state: bot.StateNotStarted})
	reporter.EXPECT().SendReports(gomock.Any()).Times(0)

	code, body := get(t, handler, "/enviar/pdf")
	require.Equal(t, http.StatusForbidden, code)
	require.Contains(t, body, "Bot No Iniciado")
}

func TestSendReports_Success(t *testing.T) {
	handler, reporter := newRouter(t, &fakeBot{state: bot.StateRunning})
	reporter.EXPECT().SendReports(gomock.Any()).
		Return(report.Summary{Total: 2, Delivered: 2}, nil)

	code, body := get(t, handler, "/enviar/pdf")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Proceso de Envío de PDF Terminado")
	require.Contains(t, body, "2 de 2")
}

func TestSendReports_BatchFailure(t *testing.T) {
	handler, reporter := newRouter(t, &fakeBot{state: bot.StateRunning})
	reporter.EXPECT().SendReports(gomock.Any()).
		Return(report.Summary{}, errors.New("could not fetch catalog"))

	code, body := get(t, handler, "/enviar/pdf")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Contains(t, body, "ERROR CRÍTICO")
	require.Contains(t, body, "could not fetch catalog")
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newRouter(t, &fakeBot{})

	code, _ := get(t, handler, "/metrics")
	require.Equal(t, http.StatusOK, code)
}
