// Package output serialises extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
)

// ToJSON serialises v, indented with two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// BandToJSON serialises an extracted band.
func BandToJSON(band *models.BandData, pretty bool) ([]byte, error) {
	if band.Rows == nil {
		band.Rows = []models.BandRow{}
	}
	return ToJSON(band, pretty)
}
