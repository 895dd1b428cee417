package gen

//go:generate go tool stringer -type=ArtifactKind -linecomment

// ArtifactKind identifies the generator that produced an artifact.
type ArtifactKind int

const (
	ArtifactBuilder ArtifactKind = iota // builder
	ArtifactDebug                       // debug
)

// Artifact is a fragment of Go declarations produced by one generator run.
type Artifact struct {
	Kind    ArtifactKind
	Record  string       // Record type name the fragment belongs to
	Source  string       // Declarations, without package clause or imports
	Imports []importSpec // Imports the declarations refer to
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}
