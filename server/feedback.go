package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/trainer"
)

// FeedbackRequest is the body of /feedback: the correct segmentation of one
// sentence. Words containing white space are split further.
type FeedbackRequest struct {
	Words []string `json:"words"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.cfg.CorpusPath == "" {
		http.Error(w, "feedback disabled", http.StatusNotFound)
		return
	}

	var req FeedbackRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	var words []string
	for _, word := range req.Words {
		words = append(words, strings.Fields(word)...)
	}
	sent := trainer.NewSentence(words)
	if len(sent.Units) == 0 {
		http.Error(w, "no words given", http.StatusBadRequest)
		return
	}
	if !s.checkSize(w, sent.Text()) {
		return
	}

	if err := s.appendFeedback(sent.Words()); err != nil {
		klog.ErrorS(err, "failed to record feedback", "corpus", s.cfg.CorpusPath)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.retrainAsync()

	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintln(w, "recorded, retraining started")
}

func (s *Server) appendFeedback(words []string) error {
	s.corpusMu.Lock()
	defer s.corpusMu.Unlock()

	f, err := os.OpenFile(s.cfg.CorpusPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strings.Join(words, " ") + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// retrainAsync schedules a retrain. Feedback arriving while one is queued
// is picked up by it instead of queueing another.
func (s *Server) retrainAsync() {
	if s.pending.Swap(true) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Retrain(); err != nil {
			klog.ErrorS(err, "retrain failed", "corpus", s.cfg.CorpusPath)
		}
	}()
}

// Retrain trains a model on the corpus, writes it to the model path and
// reloads it. On error the current model stays.
func (s *Server) Retrain() error {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()
	s.pending.Store(false)

	if s.cfg.CorpusPath == "" {
		return errors.New("no corpus configured")
	}
	s.corpusMu.Lock()
	sents, err := trainer.LoadCorpus(s.cfg.CorpusPath)
	s.corpusMu.Unlock()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if len(sents) == 0 {
		return fmt.Errorf("no sentences in %s", s.cfg.CorpusPath)
	}

	start := time.Now()
	m := trainer.Train(sents, s.cfg.Train)
	if err := saveModel(m, s.cfg.ModelPath); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	klog.InfoS("retrained", "sentences", len(sents), "features", m.Len(), "elapsed", time.Since(start))
	return s.Reload()
}

// Wait blocks until scheduled retrains have finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

// saveModel replaces path through a rename so a concurrent Reload never
// reads a half written file.
func saveModel(m *model.Model, path string) error {
	tmp := path + ".tmp"
	if err := m.Save(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
