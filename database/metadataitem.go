package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetMetadataItem decodes an unexpired metadata item into out and reports whether one was found.
func GetMetadataItem(kind string, itemId string, out interface{}) bool {
	if db == nil {
		return false
	}

	var existingItem MetadataItem

	// does item exist?
	err := db.First(&existingItem, "kind = ? AND id = ?", kind, itemId).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false
	case err != nil:
		log.WithError(err).Errorf("Failed retrieving metadata item for %q: %q", kind, itemId)
		return false
	case existingItem.Expires.Before(time.Now().UTC()):
		// the item has expired
		if err := db.Delete(&existingItem).Error; err != nil {
			log.WithError(err).Errorf("Failed removing expired metadata item for %q: %q", kind, itemId)
		}
		return false
	}

	// decode item
	if err := json.Unmarshal([]byte(existingItem.Json), out); err != nil {
		log.WithError(err).Errorf("Failed decoding metadata item for %q: %q", kind, itemId)
		return false
	}

	return true
}

func AddMetadataItem(kind string, itemId string, item interface{}, ttl time.Duration) error {
	if db == nil {
		return nil
	}

	// serialize item
	itemJson, err := json.Marshal(item)
	if err != nil {
		return errors.WithMessage(err, "failed marshalling item")
	}

	// insert or update item
	metadataItem := MetadataItem{
		Kind:    kind,
		Id:      itemId,
		Json:    string(itemJson),
		Expires: time.Now().UTC().Add(ttl),
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&metadataItem).Error; err != nil {
		return errors.Wrapf(err, "failed storing metadata item for %q: %q", kind, itemId)
	}

	return nil
}
