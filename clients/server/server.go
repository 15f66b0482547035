// Package server provides a local HTTP API over the embedding engine:
// upload a carrier, survey its capacity, embed and extract payloads.
package server

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"sync"

	"github.com/xob0t/GoVeil/pkg/carrier"
	"github.com/xob0t/GoVeil/pkg/envelope"
	"github.com/xob0t/GoVeil/pkg/stego"
)

// maxCarriers caps the in-memory store; the oldest uploads are evicted
// first. There is no persistence - the server is a local tool, not a
// service.
const maxCarriers = 32

// ── Carrier store ──

type carrierStore struct {
	mu       sync.RWMutex
	carriers map[string]*stego.PixelGrid
	order    []string
}

func newCarrierStore() *carrierStore {
	return &carrierStore{carriers: make(map[string]*stego.PixelGrid)}
}

func (cs *carrierStore) add(g *stego.PixelGrid) string {
	id := randomID()
	cs.mu.Lock()
	for len(cs.order) >= maxCarriers {
		delete(cs.carriers, cs.order[0])
		cs.order = cs.order[1:]
	}
	cs.carriers[id] = g
	cs.order = append(cs.order, id)
	cs.mu.Unlock()
	return id
}

func (cs *carrierStore) get(id string) (*stego.PixelGrid, bool) {
	cs.mu.RLock()
	g, ok := cs.carriers[id]
	cs.mu.RUnlock()
	return g, ok
}

func randomID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// ── Server ──

type srv struct {
	store *carrierStore
}

// RunServe starts the API server. Flags: --addr/-a (default :8787),
// --open to point a browser at the health endpoint.
func RunServe(args []string) error {
	addr := ":8787"
	open := false
	for i, a := range args {
		if (a == "--addr" || a == "-a") && i+1 < len(args) {
			addr = args[i+1]
		}
		if a == "--open" {
			open = true
		}
	}

	s := &srv{store: newCarrierStore()}
	slog.Info("GoVeil API listening", "addr", addr)

	if open {
		go openBrowser("http://localhost" + addr + "/api/healthz")
	}

	return http.ListenAndServe(addr, s.mux())
}

func (s *srv) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/carriers", s.handleUpload)
	mux.HandleFunc("GET /api/carriers/{id}/capacity", s.handleCapacity)
	mux.HandleFunc("POST /api/embed", s.handleEmbed)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("GET /api/healthz", s.handleHealthz)
	return mux
}

// ── Request options ──

// engineOptions mirrors the recognized engine options in JSON. A nil or
// absent field keeps the default; the threshold is a pointer because 0 is
// a meaningful value.
type engineOptions struct {
	Multiplier uint32 `json:"prngMultiplier"`
	Increment  uint32 `json:"prngIncrement"`
	Window     int    `json:"complexityWindow"`
	Threshold  *int   `json:"complexityThreshold"`
	HeaderBits int    `json:"lengthHeaderBits"`
}

func (o *engineOptions) engine() (*stego.Engine, error) {
	opts := stego.DefaultOptions()
	if o != nil {
		if o.Multiplier != 0 {
			opts.Multiplier = o.Multiplier
		}
		if o.Increment != 0 {
			opts.Increment = o.Increment
		}
		if o.Window != 0 {
			opts.Window = o.Window
		}
		if o.Threshold != nil {
			opts.Threshold = *o.Threshold
		}
		if o.HeaderBits != 0 {
			opts.HeaderBits = o.HeaderBits
		}
	}
	return stego.New(opts)
}

// ── Handlers ──

func (s *srv) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(50 << 20)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	grid, err := carrier.Decode(file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, stego.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(w, err.Error(), status)
		return
	}

	id := s.store.add(grid)
	slog.Debug("carrier uploaded", "id", id, "width", grid.Width, "height", grid.Height)

	writeJSON(w, map[string]any{
		"id":       id,
		"width":    grid.Width,
		"height":   grid.Height,
		"channels": grid.Channels,
	})
}

func (s *srv) handleCapacity(w http.ResponseWriter, r *http.Request) {
	grid, ok := s.store.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	key := r.URL.Query().Get("key")

	eng, err := (*engineOptions)(nil).engine()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rep, err := eng.Survey(grid, key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"totalSlots":    rep.TotalSlots,
		"acceptedSlots": rep.AcceptedSlots,
		"capacityBits":  rep.CapacityBits,
		"capacityBytes": rep.CapacityBytes,
	})
}

type embedRequest struct {
	CarrierID   string         `json:"carrierID"`
	Key         string         `json:"key"`
	PayloadB64  string         `json:"payloadB64"`
	Raw         bool           `json:"raw"`
	Compression string         `json:"compression"`
	Options     *engineOptions `json:"options"`
}

func (s *srv) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "decode request: "+err.Error(), http.StatusBadRequest)
		return
	}

	grid, ok := s.store.get(req.CarrierID)
	if !ok {
		http.Error(w, "unknown carrier ID", http.StatusNotFound)
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.PayloadB64)
	if err != nil {
		http.Error(w, "invalid payload base64: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Raw {
		comp, err := envelope.ParseCompression(req.Compression)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if payload, err = envelope.Seal(payload, req.Key, comp); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	eng, err := req.Options.engine()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Embed into a copy; the stored carrier stays pristine for reuse.
	out := grid.Clone()
	if err := eng.Embed(out, payload, req.Key); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := carrier.Encode(&buf, ".png", out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="stego.png"`)
	w.Write(buf.Bytes())
}

type extractRequest struct {
	CarrierID string         `json:"carrierID"`
	ImageB64  string         `json:"imageB64"`
	Key       string         `json:"key"`
	Raw       bool           `json:"raw"`
	Options   *engineOptions `json:"options"`
}

func (s *srv) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "decode request: "+err.Error(), http.StatusBadRequest)
		return
	}

	var grid *stego.PixelGrid
	switch {
	case req.ImageB64 != "":
		data, err := base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil {
			http.Error(w, "invalid image base64: "+err.Error(), http.StatusBadRequest)
			return
		}
		if grid, err = carrier.Decode(bytes.NewReader(data)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	case req.CarrierID != "":
		var ok bool
		if grid, ok = s.store.get(req.CarrierID); !ok {
			http.Error(w, "unknown carrier ID", http.StatusNotFound)
			return
		}
	default:
		http.Error(w, "need imageB64 or carrierID", http.StatusBadRequest)
		return
	}

	eng, err := req.Options.engine()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := eng.Extract(grid, req.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Raw {
		if payload, err = envelope.Open(payload, req.Key); err != nil {
			msg := err.Error()
			if errors.Is(err, envelope.ErrChecksum) || errors.Is(err, envelope.ErrNotEnvelope) {
				msg = "wrong passphrase or damaged carrier"
			}
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, map[string]any{
		"payloadB64": base64.StdEncoding.EncodeToString(payload),
	})
}

func (s *srv) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// ── Helpers ──

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}
