package query

// Codec describe cómo se guarda una entidad: tabla, columnas y conversión
// entidad <-> fila. Lo comparten los repos SQL y los in-memory.
type Codec[T any] struct {
	Table    string
	Resource string // nombre para mensajes "<resource> not found"
	Columns  []string
	OrderBy  []string

	ToFields   func(T) Fields
	FromRecord func(Record) (T, error)
}
