package indexer

// Document kinds derived from file extensions.
const (
	KindCSV   = "csv"
	KindHTML  = "html"
	KindMD    = "md"
	KindPy    = "py"
	KindImage = "image"
	KindDB    = "db"
	KindOther = "other"
)

var kindByExt = map[string]string{
	"csv":    KindCSV,
	"html":   KindHTML,
	"htm":    KindHTML,
	"md":     KindMD,
	"py":     KindPy,
	"jpg":    KindImage,
	"jpeg":   KindImage,
	"png":    KindImage,
	"gif":    KindImage,
	"webp":   KindImage,
	"db":     KindDB,
	"sqlite": KindDB,
}

// GuessKind maps a lowercased extension (without the leading dot) to a document
// kind. Unknown extensions map to "other".
func GuessKind(ext string) string {
	if kind, ok := kindByExt[ext]; ok {
		return kind
	}
	return KindOther
}
