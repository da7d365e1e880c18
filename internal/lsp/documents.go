package lsp

import "sync"

type document struct {
	content string
	version int32
	result  *AnalysisResult
}

// DocumentStore holds open document contents and their latest analysis,
// keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open stores a newly opened document and returns its analysis.
func (s *DocumentStore) Open(uri, content string, version int32) *AnalysisResult {
	result := Analyze(uri, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content, version: version, result: result}
	return result
}

// Update replaces a document's content and returns its new analysis. A change
// older than the stored version is ignored and returns nil.
func (s *DocumentStore) Update(uri, content string, version int32) *AnalysisResult {
	result := Analyze(uri, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok && version < doc.version {
		return nil
	}
	s.docs[uri] = &document{content: content, version: version, result: result}
	return result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the analysis of the stored content, or nil.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[uri]; ok {
		return doc.result
	}
	return nil
}
