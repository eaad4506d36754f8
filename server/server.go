// Package server exposes a segmenter over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/coocood/freecache"
	"golang.org/x/text/unicode/norm"
	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/segmenter"
	"github.com/teatak/tinyseg/trainer"
	"github.com/teatak/tinyseg/util"
)

// Config configures a Server.
type Config struct {
	// ModelPath is the feature-weight table. Empty means an empty table.
	ModelPath string
	// CacheBytes sizes the result cache; 0 disables it.
	CacheBytes int
	// CacheTTLSeconds expires cached results; 0 keeps them until evicted.
	CacheTTLSeconds int
	// MaxTextBytes caps the text of one request, before and after
	// normalization.
	// 0 means no limit.
	MaxTextBytes int
	// CorpusPath is the segmented training corpus /feedback appends to.
	// Empty disables /feedback.
	CorpusPath string
	// Train controls retraining after feedback. The zero value means
	// trainer.DefaultOptions.
	Train trainer.Options
}

// DefaultConfig returns the configuration cmd/server starts from.
func DefaultConfig() Config {
	return Config{
		ModelPath:       "data/model.txt",
		CacheBytes:      64 * 1024 * 1024,
		CacheTTLSeconds: 3600,
		MaxTextBytes:    1 << 20,
		Train:           trainer.DefaultOptions(),
	}
}

// Server answers segmentation requests. The model can be swapped at any
// time with Reload; requests in flight finish with the segmenter they
// started with.
type Server struct {
	cfg   Config
	cache *freecache.Cache

	mu         sync.RWMutex
	seg        *segmenter.Segmenter
	generation uint64

	corpusMu sync.Mutex // guards the corpus file
	trainMu  sync.Mutex // one retrain at a time
	pending  atomic.Bool
	wg       sync.WaitGroup
}

// New creates a server and loads its model.
func New(cfg Config) (*Server, error) {
	if cfg.CorpusPath != "" && cfg.ModelPath == "" {
		return nil, errors.New("feedback needs a model path to write retrained models to")
	}
	if cfg.Train == (trainer.Options{}) {
		cfg.Train = trainer.DefaultOptions()
	}

	s := &Server{cfg: cfg}
	if cfg.CacheBytes > 0 {
		s.cache = freecache.NewCache(cfg.CacheBytes)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload loads the model file again. On error the current model stays.
func (s *Server) Reload() error {
	m := model.Empty()
	if s.cfg.ModelPath != "" {
		loaded, err := model.LoadFile(s.cfg.ModelPath)
		if err != nil {
			return fmt.Errorf("reload model: %w", err)
		}
		m = loaded
	} else {
		klog.InfoS("no model configured, every text is one token")
	}

	seg := segmenter.New(m)
	s.mu.Lock()
	s.seg = seg
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Clear()
	}
	klog.InfoS("model loaded", "path", s.cfg.ModelPath, "features", m.Len(), "bias", m.Bias(), "generation", gen)
	return nil
}

func (s *Server) current() (*segmenter.Segmenter, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seg, s.generation
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/segment", s.handleSegment)
	mux.HandleFunc("/explain", s.handleExplain)
	mux.HandleFunc("/reload", s.handleReload)
	mux.HandleFunc("/feedback", s.handleFeedback)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// SegRequest is the body of /segment and /explain.
type SegRequest struct {
	Text            string `json:"text"`
	Normalize       bool   `json:"normalize"`        // NFKC before segmenting
	DropPunctuation bool   `json:"drop_punctuation"` // drop punctuation and blank tokens
}

type SegResponse struct {
	Tokens []string `json:"tokens"`
}

type ExplainResponse struct {
	Boundaries []segmenter.Boundary `json:"boundaries"`
}

// decode reads a request body. It writes the error response itself and
// returns false when the request cannot be served.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req *SegRequest) bool {
	if !s.readJSON(w, r, req) {
		return false
	}
	if !s.checkSize(w, req.Text) {
		return false
	}
	if req.Normalize {
		// NFKC can grow text up to 18 times.
		req.Text = norm.NFKC.String(req.Text)
		if !s.checkSize(w, req.Text) {
			return false
		}
	}
	return true
}

// readJSON decodes a POST body into v, bounded by MaxTextBytes.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	var body io.Reader = r.Body
	if s.cfg.MaxTextBytes > 0 {
		// JSON escaping can grow text up to six times.
		body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxTextBytes)*6+4096)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) checkSize(w http.ResponseWriter, text string) bool {
	if s.cfg.MaxTextBytes > 0 && len(text) > s.cfg.MaxTextBytes {
		http.Error(w, "text too large", http.StatusRequestEntityTooLarge)
		return false
	}
	return true
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req SegRequest
	if !s.decode(w, r, &req) {
		return
	}

	seg, gen := s.current()
	key := cacheKey(gen, req)
	w.Header().Set("Content-Type", "application/json")
	if s.cache != nil {
		if body, err := s.cache.Get(key); err == nil {
			w.Header().Set("X-Cache", "hit")
			w.Write(body)
			return
		}
	}

	tokens := seg.Segment(req.Text)
	if req.DropPunctuation {
		tokens = util.DropPunctuation(tokens)
	}
	body, err := json.Marshal(SegResponse{Tokens: tokens})
	if err != nil {
		klog.ErrorS(err, "failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	body = append(body, '\n')

	if s.cache != nil {
		if err := s.cache.Set(key, body, s.cfg.CacheTTLSeconds); err != nil {
			klog.V(2).InfoS("result not cached", "err", err, "bytes", len(body))
		}
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(body)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req SegRequest
	if !s.decode(w, r, &req) {
		return
	}

	seg, _ := s.current()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ExplainResponse{Boundaries: seg.Explain(req.Text)}); err != nil {
		klog.ErrorS(err, "failed to encode response")
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.Reload(); err != nil {
		klog.ErrorS(err, "reload failed", "path", s.cfg.ModelPath)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Fprintln(w, "reloaded")
}

func cacheKey(gen uint64, req SegRequest) []byte {
	key := make([]byte, 0, len(req.Text)+24)
	key = strconv.AppendUint(key, gen, 10)
	key = append(key, '|')
	key = strconv.AppendBool(key, req.DropPunctuation)
	key = append(key, '|')
	return append(key, req.Text...)
}
