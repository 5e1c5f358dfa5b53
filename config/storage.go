package config

// DefaultMaxUploadBytes caps a single image upload at 5 MiB
const DefaultMaxUploadBytes int64 = 5 << 20

// Hero copy shown on the public menu until an admin edits the menu content record.
const (
	DefaultMenuHeading      = "Authentic Flavors"
	DefaultMenuTagline      = "Our Menu"
	DefaultMenuDescription  = "Handcrafted with traditional recipes passed down through generations."
	DefaultMenuImageURL     = "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=1920&h=600&fit=crop"
	DefaultEmptyMenuMessage = "Our menu is being updated. Please check back soon!"
)

// StorageConfig configures the object store that holds dish and menu images.
// Driver is "s3" for any S3-compatible service or "memory" for local runs.
type StorageConfig struct {
	Driver        string
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string

	MaxUploadBytes int64
}

// ContentConfig holds the fallback menu copy and presentation settings
type ContentConfig struct {
	DefaultHeading     string
	DefaultTagline     string
	DefaultDescription string
	DefaultImageURL    string
	CurrencySymbol     string
	EmptyMenuMessage   string
}
