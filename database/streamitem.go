package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetStreamItem decodes an unexpired stream item into out and reports whether one was found.
func GetStreamItem(provider string, itemId string, out interface{}) bool {
	if db == nil {
		return false
	}

	var existingItem StreamItem

	err := db.First(&existingItem, "provider = ? AND id = ?", provider, itemId).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false
	case err != nil:
		log.WithError(err).Errorf("Failed retrieving stream item for %q: %q", provider, itemId)
		return false
	case existingItem.Expires.Before(time.Now().UTC()):
		// the item has expired
		if err := db.Delete(&existingItem).Error; err != nil {
			log.WithError(err).Errorf("Failed removing expired stream item for %q: %q", provider, itemId)
		}
		return false
	}

	if err := json.Unmarshal([]byte(existingItem.Json), out); err != nil {
		log.WithError(err).Errorf("Failed decoding stream item for %q: %q", provider, itemId)
		return false
	}

	return true
}

func AddStreamItem(provider string, itemId string, item interface{}, ttl time.Duration) error {
	if db == nil || ttl <= 0 {
		return nil
	}

	itemJson, err := json.Marshal(item)
	if err != nil {
		return errors.WithMessage(err, "failed marshalling item")
	}

	streamItem := StreamItem{
		Provider: provider,
		Id:       itemId,
		Json:     string(itemJson),
		Expires:  time.Now().UTC().Add(ttl),
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&streamItem).Error; err != nil {
		return errors.Wrapf(err, "failed storing stream item for %q: %q", provider, itemId)
	}

	return nil
}

// PruneExpired removes every expired metadata and stream item.
func PruneExpired() (int64, error) {
	if db == nil {
		return 0, nil
	}

	now := time.Now().UTC()

	res := db.Where("expires < ?", now).Delete(&MetadataItem{})
	if res.Error != nil {
		return 0, errors.WithMessage(res.Error, "failed pruning metadata items")
	}
	removed := res.RowsAffected

	res = db.Where("expires < ?", now).Delete(&StreamItem{})
	if res.Error != nil {
		return removed, errors.WithMessage(res.Error, "failed pruning stream items")
	}

	return removed + res.RowsAffected, nil
}
