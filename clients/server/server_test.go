package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/GoVeil/pkg/carrier"
	"github.com/xob0t/GoVeil/pkg/stego"
)

// testCarrierPNG encodes a high-contrast noise carrier whose complexity
// scores sit far from the default threshold on both sides.
func testCarrierPNG(t *testing.T) []byte {
	t.Helper()
	g := carrier.Noise(64, 64, 11)
	for i := range g.Pix {
		if (i+1)%4 == 0 {
			continue
		}
		if g.Pix[i] >= 128 {
			g.Pix[i] = 255
		} else {
			g.Pix[i] = 0
		}
	}
	var buf bytes.Buffer
	require.NoError(t, carrier.Encode(&buf, ".png", g))
	return buf.Bytes()
}

func uploadCarrier(t *testing.T, mux *http.ServeMux, png []byte) string {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "carrier.png")
	require.NoError(t, err)
	fw.Write(png)
	mw.Close()

	req := httptest.NewRequest("POST", "/api/carriers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct{ ID string }
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHealthz(t *testing.T) {
	mux := (&srv{store: newCarrierStore()}).mux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUploadRejectsGarbage(t *testing.T) {
	mux := (&srv{store: newCarrierStore()}).mux()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "notes.txt")
	fw.Write([]byte("not an image"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/carriers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCapacity(t *testing.T) {
	mux := (&srv{store: newCarrierStore()}).mux()
	id := uploadCarrier(t, mux, testCarrierPNG(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/carriers/"+id+"/capacity?key=k", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		TotalSlots    int `json:"totalSlots"`
		AcceptedSlots int `json:"acceptedSlots"`
		CapacityBytes int `json:"capacityBytes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 64*64*3, resp.TotalSlots)
	assert.Greater(t, resp.AcceptedSlots, 0)
	assert.Greater(t, resp.CapacityBytes, 0)
}

func TestEmbedExtractViaAPI(t *testing.T) {
	mux := (&srv{store: newCarrierStore()}).mux()
	id := uploadCarrier(t, mux, testCarrierPNG(t))
	payload := []byte("over the wire")

	// Embed.
	body, _ := json.Marshal(embedRequest{
		CarrierID:  id,
		Key:        "api key",
		PayloadB64: base64.StdEncoding.EncodeToString(payload),
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/embed", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	// Extract from the returned image.
	body, _ = json.Marshal(extractRequest{
		ImageB64: base64.StdEncoding.EncodeToString(rec.Body.Bytes()),
		Key:      "api key",
	})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/extract", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		PayloadB64 string `json:"payloadB64"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	got, err := base64.StdEncoding.DecodeString(resp.PayloadB64)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestExtractWrongKeyViaAPI(t *testing.T) {
	mux := (&srv{store: newCarrierStore()}).mux()
	id := uploadCarrier(t, mux, testCarrierPNG(t))

	body, _ := json.Marshal(embedRequest{
		CarrierID:  id,
		Key:        "right",
		PayloadB64: base64.StdEncoding.EncodeToString([]byte("secret")),
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/embed", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ = json.Marshal(extractRequest{
		ImageB64: base64.StdEncoding.EncodeToString(rec.Body.Bytes()),
		Key:      "wrong",
	})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/extract", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreEviction(t *testing.T) {
	cs := newCarrierStore()
	var first string
	for i := 0; i < maxCarriers+3; i++ {
		id := cs.add(stego.NewPixelGrid(2, 2, 3))
		if i == 0 {
			first = id
		}
	}
	_, ok := cs.get(first)
	assert.False(t, ok, "oldest carrier should be evicted")
	assert.Len(t, cs.carriers, maxCarriers)
}
