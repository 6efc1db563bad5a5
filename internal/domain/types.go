package domain

// SourceType classifies where a corpus entry came from.
type SourceType string

const (
	SourceAcademic SourceType = "academic"
	SourceWeb      SourceType = "web"
	SourceInternal SourceType = "internal"
)

// Sentence is a single segmented sentence of a submitted document.
// Start and End are byte offsets into the document text; sentences are
// non-overlapping and ordered by Index.
type Sentence struct {
	Index int
	Text  string
	Start int
	End   int
}

// CorpusEntry is one reference text owned by the corpus collaborator.
// It is immutable for the duration of a scoring run.
type CorpusEntry struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	SourceType SourceType `json:"source_type"`
	Title      string     `json:"title"`
	URL        string     `json:"url,omitempty"`
}

// LexicalScores carries the individual lexical sub-signals for one
// (sentence, candidate) pair. All values are in [0,1].
type LexicalScores struct {
	ExactContainment float64 `json:"exact_containment"`
	Sequence         float64 `json:"sequence"`
	TFIDFCosine      float64 `json:"tfidf_cosine"`
	WindowOverlap    float64 `json:"window_overlap"`
	LCS              float64 `json:"lcs"`
	EditDistance     float64 `json:"edit_distance"`
	Containment      float64 `json:"containment"`
	Jaccard          float64 `json:"jaccard"`
	Fingerprint      float64 `json:"fingerprint"`
}

// MatchCandidate is the transient scoring result for one shortlisted
// corpus entry against one sentence.
type MatchCandidate struct {
	SentenceIndex int
	CorpusID      string
	Lexical       LexicalScores
	LexicalScore  float64
	// SemanticScore is set only in hybrid mode.
	SemanticScore float64
	HasSemantic   bool
	FusedScore    float64
}

// SentenceMatch is the winning candidate for a sentence. At most one
// exists per sentence; sentences whose best candidate falls below the
// match threshold have none.
type SentenceMatch struct {
	SentenceIndex int        `json:"sentence_index"`
	SentenceText  string     `json:"sentence_text"`
	CorpusID      string     `json:"corpus_id"`
	SourceType    SourceType `json:"source_type"`
	SourceTitle   string     `json:"source_title"`
	SourceURL     string     `json:"source_url,omitempty"`
	LexicalScore  float64    `json:"lexical_score"`
	SemanticScore float64    `json:"semantic_score,omitempty"`
	FusedScore    float64    `json:"similarity"`
}

// DocumentReport aggregates the per-sentence matches of one document.
type DocumentReport struct {
	ID              string          `json:"id"`
	DocumentID      string          `json:"document_id"`
	Name            string          `json:"name"`
	Content         string          `json:"content"`
	Matches         []SentenceMatch `json:"matches"`
	SentenceCount   int             `json:"sentence_count"`
	WordCount       int             `json:"word_count"`
	PlagiarismRatio float64         `json:"plagiarism_ratio"`
	// HighestSimilarity is the best fused score in Matches, 0 when empty.
	HighestSimilarity float64  `json:"highest_similarity"`
	Sources           []string `json:"sources"`
	Flagged           bool     `json:"flagged"`
	TimeSpent         string   `json:"time_spent"`
}

// PairwiseSimilarity is one unordered document pair of a batch run.
type PairwiseSimilarity struct {
	DocA       string  `json:"doc_a"`
	DocB       string  `json:"doc_b"`
	Similarity float64 `json:"similarity"`
}

// BatchResult is the outcome of a multi-document check: one report per
// document plus the upper-triangular inter-document comparison.
type BatchResult struct {
	Reports    []DocumentReport     `json:"hybrid_reports"`
	Comparison []PairwiseSimilarity `json:"batch_comparison"`
}

// Document is a submitted text with its declared identifier, as handed
// over by the ingestion collaborator.
type Document struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}
