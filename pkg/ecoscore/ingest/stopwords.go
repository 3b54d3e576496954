package ingest

// DefaultStopwords is the built-in filler-word list for Portuguese
// activity descriptions: articles, prepositions, conjunctions, and common
// verbs that carry no category signal.
func DefaultStopwords() []string {
	return []string{
		"eu", "de", "da", "do", "das", "dos", "a", "o", "os", "as",
		"um", "uma", "uns", "umas", "e", "pra", "para", "por", "com",
		"sem", "no", "na", "nos", "nas", "em", "que", "foi", "tava",
		"estava", "fiz", "fazer", "usei", "usar", "use", "uso", "hoje",
		"ontem", "minha", "meu", "minhas", "meus", "nao", "sim",
		"tambem", "muito", "pouco", "mais", "menos", "tanto", "quanto",
		"como", "assim", "entao", "depois",
	}
}

// NewDefaultTokenizer returns a tokenizer loaded with DefaultStopwords.
func NewDefaultTokenizer() *Tokenizer {
	return NewTokenizer(DefaultStopwords())
}
