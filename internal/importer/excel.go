package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"planhotel/internal/parser"
)

// ExcelReader lit un planning .xlsx et en extrait la grille brute
// La lecture du fichier s'arrête ici: toute la sémantique appartient au parseur
type ExcelReader struct {
	file   *excelize.File
	fileID string
}

// NewExcelReader crée un lecteur avec un identifiant de fichier unique
func NewExcelReader() *ExcelReader {
	return &ExcelReader{
		fileID: uuid.New().String(),
	}
}

// FileID identifiant attribué au fichier chargé
func (r *ExcelReader) FileID() string {
	return r.fileID
}

// Load charge le classeur depuis un flux
func (r *ExcelReader) Load(src io.Reader) error {
	file, err := excelize.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	r.file = file
	return nil
}

// Close libère le classeur
func (r *ExcelReader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// Grid lignes de la première feuille, telles quelles
func (r *ExcelReader) Grid() (parser.RawSheet, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := r.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := r.file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return parser.RawSheet(rows), nil
}
