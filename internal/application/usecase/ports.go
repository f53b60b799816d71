package usecase

// FileStore guarda los PDF subidos en disco bajo un nombre opaco.
// La implementación vive en infrastructure/storage.
type FileStore interface {
	// Save persiste el contenido y devuelve el nombre y la ruta almacenados.
	Save(uploadID, originalFilename string, content []byte) (storedFilename, storedPath string, err error)
	// Open devuelve el contenido de un archivo almacenado.
	Open(storedPath string) ([]byte, error)
	Remove(storedPath string) error
}

// ExtractionQueue encola trabajos de extracción para procesamiento asíncrono.
// Devuelve error si la cola está llena o cerrada.
type ExtractionQueue interface {
	Enqueue(uploadID string) error
}
