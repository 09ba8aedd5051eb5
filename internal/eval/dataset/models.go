package dataset

// LabelRecord is one labeled example: a product-label photo plus the
// reference product name and expiry date a human read off it.
type LabelRecord struct {
	// Primary key
	Identifier string `json:"identifier" parquet:"identifier"`

	// Exactly one of ImagePath / ImageURL is expected. URL-based rows get
	// downloaded into the dataset's image directory before a run.
	ImagePath string `json:"image_path" parquet:"image_path"`
	ImageURL  string `json:"image_url" parquet:"image_url"`

	// Ground truth
	Product    string `json:"product" parquet:"product"`
	ExpiryDate string `json:"expiry_date" parquet:"expiry_date"`
}
