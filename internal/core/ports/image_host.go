package ports

import "context"

// ImageHost stores uploaded images and returns their canonical URL.
// Delete is best effort: it reports success instead of returning an error.
type ImageHost interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	Delete(ctx context.Context, url string) bool
	// Owns reports whether url is hosted here inside restaurantID's image folder.
	Owns(restaurantID, url string) bool
}

// ImageCleaner schedules asynchronous removal of images that are no longer referenced.
type ImageCleaner interface {
	Owns(restaurantID, url string) bool
	Schedule(url string)
}
