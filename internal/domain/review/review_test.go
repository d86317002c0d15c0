package review

import (
	"errors"
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewReviewRatingBounds(t *testing.T) {
	for _, r := range []int{0, 6, -1} {
		_, err := NewReview(uuid.New(), uuid.New(), uuid.New(), r, "", time.Now())
		assert.True(t, errors.Is(err, domain.ErrValidation), "rating %d", r)
	}
	for r := MinRating; r <= MaxRating; r++ {
		_, err := NewReview(uuid.New(), uuid.New(), uuid.New(), r, "", time.Now())
		assert.NoError(t, err, "rating %d", r)
	}
}

func TestMeanAndDisplay(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 4.0, Mean([]int{4}))
	assert.InDelta(t, 4.3333333, Mean([]int{4, 5, 4}), 1e-6)
	assert.Equal(t, 4.3, DisplayRating(Mean([]int{4, 5, 4})))
	assert.Equal(t, 4.5, DisplayRating(4.46))
}
