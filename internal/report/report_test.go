package report_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reporter/internal/config"
	"reporter/internal/report"
	"reporter/pkg/domain"
	mockgeo "reporter/pkg/geo/mock"
	"reporter/pkg/mailer"
	mockmailer "reporter/pkg/mailer/mock"
	mockpdfcrypt "reporter/pkg/pdfcrypt/mock"
	mockpdfgen "reporter/pkg/pdfgen/mock"
	mockstorage "reporter/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	storage   *mockstorage.MockStorage
	renderer  *mockpdfgen.MockRenderer
	encryptor *mockpdfcrypt.MockEncryptor
	mailer    *mockmailer.MockMailer
	geo       *mockgeo.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	return &fixture{
		storage:   mockstorage.NewMockStorage(ctrl),
		renderer:  mockpdfgen.NewMockRenderer(ctrl),
		encryptor: mockpdfcrypt.NewMockEncryptor(ctrl),
		mailer:    mockmailer.NewMockMailer(ctrl),
		geo:       mockgeo.NewMockClient(ctrl),
	}
}

func (f *fixture) reporter(options report.Options) report.Reporter {
	return report.New(f.storage, f.renderer, f.encryptor, f.mailer, f.geo, nil, options)
}

func tableOptions() report.Options {
	return report.Options{RecipientSource: config.RecipientSourceTable}
}

func sampleItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Name: "Zelda"},
		{ID: 2, Name: "Metroid"},
	}
}

// createArtifact writes a placeholder file so cleanup can be observed.
func createArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	return path
}

func TestSendReports_DeliversToAllRecipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	recipients := []domain.Recipient{
		{Cedula: "1102233445", Email: "ana@example.com"},
		{Cedula: "0911223344", Email: "luis@example.com"},
	}

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).Return(recipients, nil)

	var sent []mailer.Message
	for _, recipient := range recipients {
		temp := createArtifact(t, dir, "TEMP_"+recipient.Cedula+".pdf")
		encrypted := createArtifact(t, dir, "PROTEGIDO_"+recipient.Cedula+".pdf")

		f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp, nil)
		f.encryptor.EXPECT().Encrypt(gomock.Any(), temp, recipient.Cedula).Return(encrypted, nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg mailer.Message) error {
				sent = append(sent, msg)
				return nil
			})
	}

	summary, err := f.reporter(tableOptions()).SendReports(ctx)
	require.NoError(t, err)
	require.Equal(t, report.Summary{Total: 2, Delivered: 2}, summary)

	require.Len(t, sent, 2)
	require.Equal(t, "ana@example.com", sent[0].To)
	require.Equal(t, "luis@example.com", sent[1].To)
	for _, msg := range sent {
		require.Contains(t, msg.Subject, "Catálogo Videojuegos PROTEGIDO")
		require.Contains(t, msg.HTMLBody, "AES-256")
		require.Contains(t, msg.HTMLBody, "CÉDULA")
		require.NotContains(t, msg.HTMLBody, "1102233445")
	}

	// Every artifact from every iteration must be gone.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSendReports_CatalogFetchFailureAbortsRun(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).
		Return(nil, errors.New("connection refused"))

	summary, err := f.reporter(tableOptions()).SendReports(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not fetch catalog")
	require.Zero(t, summary.Total)
	require.Zero(t, summary.Delivered)
}

func TestSendReports_RecipientsFetchFailureAbortsRun(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).Return(nil, errors.New("relation does not exist"))

	_, err := f.reporter(tableOptions()).SendReports(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not fetch recipients")
}

func TestSendReports_FailedRecipientIsSkipped(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	recipients := []domain.Recipient{
		{Cedula: "111", Email: "first@example.com"},
		{Cedula: "222", Email: "second@example.com"},
		{Cedula: "333", Email: "third@example.com"},
	}

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).Return(recipients, nil)

	// First recipient delivers.
	temp1 := createArtifact(t, dir, "TEMP_1.pdf")
	enc1 := createArtifact(t, dir, "ENC_1.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp1, nil)
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp1, "111").Return(enc1, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	// Second fails at encryption; its temp file must still be cleaned up and
	// the loop must reach the third recipient.
	temp2 := createArtifact(t, dir, "TEMP_2.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp2, nil)
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp2, "222").Return("", errors.New("qpdf exited with status 2"))

	// Third delivers.
	temp3 := createArtifact(t, dir, "TEMP_3.pdf")
	enc3 := createArtifact(t, dir, "ENC_3.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp3, nil)
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp3, "333").Return(enc3, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	summary, err := f.reporter(tableOptions()).SendReports(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.Summary{Total: 3, Delivered: 2, Skipped: 1}, summary)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSendReports_SingleAddressMode(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	options := report.Options{
		RecipientSource: config.RecipientSourceSingle,
		SingleEmail:     "backup@example.com",
		SinglePassword:  "0987654321",
	}

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	// Recipients must not be queried in single-address mode.

	temp := createArtifact(t, dir, "TEMP_single.pdf")
	enc := createArtifact(t, dir, "ENC_single.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp, nil)
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp, "0987654321").Return(enc, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			require.Equal(t, "backup@example.com", msg.To)
			require.Equal(t, enc, msg.AttachmentPath)
			return nil
		})

	summary, err := f.reporter(options).SendReports(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.Summary{Total: 1, Delivered: 1}, summary)
}

func TestSendReports_GeoLookupFailureUsesSentinel(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	options := report.Options{RecipientSource: config.RecipientSourceTable, GeoLookup: true}

	f.geo.EXPECT().Locate(gomock.Any()).Return(domain.GeoContext{}, errors.New("timeout"))
	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).
		Return([]domain.Recipient{{Cedula: "111", Email: "a@example.com"}}, nil)

	temp := createArtifact(t, dir, "TEMP.pdf")
	enc := createArtifact(t, dir, "ENC.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []domain.CatalogItem, location *domain.GeoContext) (string, error) {
			require.NotNil(t, location)
			require.Equal(t, domain.NetworkErrorLocation, *location)
			return temp, nil
		})
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp, "111").Return(enc, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.reporter(options).SendReports(context.Background())
	require.NoError(t, err)
}

func TestSendReports_GeoLookupDisabled(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).
		Return([]domain.Recipient{{Cedula: "111", Email: "a@example.com"}}, nil)

	temp := createArtifact(t, dir, "TEMP.pdf")
	enc := createArtifact(t, dir, "ENC.pdf")
	f.renderer.EXPECT().Render(gomock.Any(), sampleItems(), nil).Return(temp, nil)
	f.encryptor.EXPECT().Encrypt(gomock.Any(), temp, "111").Return(enc, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.reporter(tableOptions()).SendReports(context.Background())
	require.NoError(t, err)
}

func TestSendReports_NoRecipients(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().CatalogItems(gomock.Any(), domain.CatalogFilter{}).Return(sampleItems(), nil)
	f.storage.EXPECT().Recipients(gomock.Any()).Return(nil, nil)

	summary, err := f.reporter(tableOptions()).SendReports(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.Summary{}, summary)
}

func TestCatalog_CapsInteractiveQueries(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().
		CatalogItems(gomock.Any(), domain.CatalogFilter{Term: "zelda", Limit: 20}).
		Return(sampleItems(), nil)

	items, err := f.reporter(tableOptions()).Catalog(context.Background(), "zelda")
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestCatalog_PropagatesStorageErrors(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().
		CatalogItems(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("broken pipe"))

	_, err := f.reporter(tableOptions()).Catalog(context.Background(), "")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "could not query catalog"))
}
