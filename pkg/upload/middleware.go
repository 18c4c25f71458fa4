package upload

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/pkg/logging"
)

const localsKey = "imagePath"

// Single stores the file sent in field before the handler runs and exposes
// its path through ImagePath. When the handler fails, the stored file is
// removed again.
func Single(store *Store, field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(field)
		if err != nil {
			// no multipart body, or no part named field
			return ErrFileRequired
		}
		path, err := store.Save(fh)
		if err != nil {
			return err
		}
		c.Locals(localsKey, path)

		if err := c.Next(); err != nil {
			if rmErr := store.Remove(path); rmErr != nil {
				logging.Warn().Err(rmErr).Str("image", path).Msg("remove image of failed request")
			}
			return err
		}
		return nil
	}
}

// ImagePath returns the path stored by Single, or "" if none.
func ImagePath(c *fiber.Ctx) string {
	p, _ := c.Locals(localsKey).(string)
	return p
}
