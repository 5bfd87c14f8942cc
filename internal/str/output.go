//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

type WordProb struct {
	Prob   float64 `json:"prob"`
	WordID int     `json:"word_id"`
}

type DocProb struct {
	Prob  float64 `json:"prob"`
	DocID int     `json:"doc_id"`
}

// VisPayload - what the front-end reads; the keys are the ones the editor already knows
type VisPayload struct {
	Vocab            []string                `json:"vocab"`
	DocTxt           []string                `json:"doc_txt"`
	TopTopicTerms    map[int][]WordProb      `json:"top_topic_terms"`
	TopDocsTopic     map[int][]DocProb       `json:"top_docs_topic"`
	TopicLabels      map[int]string          `json:"topic_labels"`
	CumulativeMass   map[int]map[int]float64 `json:"cumulative_mass"`
	WordTopicProbs   map[string][]float64    `json:"word_topic_probs"`
	TopicCoordinates []TopicPoint            `json:"topic_coordinates"`
}

// LDAvisPayload - the five arrays pyLDAvis.prepare() wants
type LDAvisPayload struct {
	TopicTermDists [][]float64 `json:"topic_term_dists"`
	DocTopicDists  [][]float64 `json:"doc_topic_dists"`
	DocLengths     []int       `json:"doc_lengths"`
	Vocab          []string    `json:"vocab"`
	TermFrequency  []int       `json:"term_frequency"`
}

// RunSummary - one row of the ledger listing
type RunSummary struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Mode        string    `json:"mode"`
	Fingerprint string    `json:"fingerprint"`
	NTopics     int       `json:"ntopics"`
}

// Run - a ledger record: the summary plus the compressed blobs
type Run struct {
	RunSummary
	Labels      map[int]string `json:"labels"`
	Annotations []Annotation   `json:"annotations"`
}
