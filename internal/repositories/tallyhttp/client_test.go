package tallyhttp_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	"github.com/autoledger-in/tallybridge/internal/repositories/tallyhttp"
)

func newTestClient(url string) *tallyhttp.Client {
	return tallyhttp.NewClient(url, 5*time.Second, 2*time.Second)
}

func TestCheckHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte("TallyPrime Server is Running"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	assert.NoError(t, client.CheckHealth(context.Background()))
}

func TestCheckHealthUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	err := client.CheckHealth(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTallyUnreachable)
}

func TestImportParsesCounters(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Write([]byte(`<RESPONSE><CREATED>2</CREATED><ALTERED>1</ALTERED><ERRORS>0</ERRORS><LASTVCHID>1042</LASTVCHID></RESPONSE>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Import(context.Background(), "<ENVELOPE></ENVELOPE>")
	require.NoError(t, err)

	assert.Equal(t, "<ENVELOPE></ENVELOPE>", received)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Altered)
	assert.Zero(t, result.Errors)
	assert.Equal(t, "1042", result.LastVoucher)
	assert.False(t, result.Failed())
}

func TestImportParsesLineErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<RESPONSE><CREATED>0</CREATED><ERRORS>1</ERRORS>` +
			`<LINEERROR>Ledger &apos;Sale 18%&apos; does not exist &amp; cannot be used</LINEERROR></RESPONSE>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Import(context.Background(), "<ENVELOPE></ENVELOPE>")
	require.NoError(t, err)

	assert.True(t, result.Failed())
	require.Len(t, result.LineErrors, 1)
	assert.Equal(t, "Ledger 'Sale 18%' does not exist & cannot be used", result.LineErrors[0])
}

func TestImportGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Import(context.Background(), "<ENVELOPE></ENVELOPE>")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTallyUnreachable)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)
}

func TestFetchLedgerNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ENVELOPE>` +
			`<LEDGER NAME="Cash" RESERVEDNAME="Cash"></LEDGER>` +
			`<LEDGER NAME="Sharma &amp; Sons" RESERVEDNAME=""></LEDGER>` +
			`<LEDGER NAME="Cash" RESERVEDNAME="Cash"></LEDGER>` +
			`<LEDGER NAME="" RESERVEDNAME=""></LEDGER>` +
			`</ENVELOPE>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	names, err := client.FetchLedgerNames(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash", "Sharma & Sons"}, names)
}

func TestFetchLedgerNamesSendsExportRequest(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Write([]byte("<ENVELOPE></ENVELOPE>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLedgerNames(context.Background(), "Acme")
	require.NoError(t, err)

	assert.Contains(t, received, "<TALLYREQUEST>Export Data</TALLYREQUEST>")
	assert.Contains(t, received, "<REPORTNAME>List of Accounts</REPORTNAME>")
	assert.Contains(t, received, "<SVCURRENTCOMPANY>Acme</SVCURRENTCOMPANY>")
}

func TestFetchCompanies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ENVELOPE>` +
			`<COMPANY NAME="Acme Traders"></COMPANY>` +
			`<COMPANY NAME="Sharma &amp; Sons"></COMPANY>` +
			`</ENVELOPE>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	companies, err := client.FetchCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Traders", "Sharma & Sons"}, companies)
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	client := tallyhttp.NewClient("http://localhost:9000/", time.Second, time.Second)
	assert.Equal(t, "http://localhost:9000", client.BaseURL())
}
