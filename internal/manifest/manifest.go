package manifest

// Entry describes one remote product to retrieve: its MAST identifier,
// the path it is written to relative to the download folder, and the
// HTTP endpoint that serves it.
type Entry struct {
	URI  string
	File string
	URL  string
}

// DefaultFolder is the bundle folder name this dataset was generated with.
const DefaultFolder = "MAST_2023-02-13T2349"

const downloadEndpoint = "https://mast.stsci.edu/api/v0.1/Download/file?uri="

var products = []string{
	"jw01345-o054_t022_nircam_clear-f090w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f115w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f150w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f200w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f277w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f356w_i2d.fits",
	"jw01345-o054_t022_nircam_clear-f444w_i2d.fits",
}

// Dataset returns the fixed list of NIRCam i2d mosaics to fetch, one per
// filter, in display order. The slice is freshly allocated on each call so
// callers may not clobber the package state.
func Dataset() []Entry {
	entries := make([]Entry, 0, len(products))
	for _, name := range products {
		obs := name[:len(name)-len("_i2d.fits")]
		entries = append(entries, Entry{
			URI:  "mast:JWST/product/" + name,
			File: "JWST/" + obs + "/" + name,
			URL:  downloadEndpoint + "mast:JWST/product/" + name,
		})
	}
	return entries
}
