package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"navify-backend/internal/domain/model"
)

func TestCongestionEstimator_Estimate(t *testing.T) {
	estimator := NewCongestionEstimator()

	t.Run("速度0km/hは停滞として95", func(t *testing.T) {
		acc := &model.CellAccumulator{Speeds: []float64{0}, Count: 1}
		assert.Equal(t, 95, estimator.Estimate(acc))
	})

	t.Run("速度60km/hは順調として10", func(t *testing.T) {
		acc := &model.CellAccumulator{Speeds: []float64{60}, Count: 1}
		assert.Equal(t, 10, estimator.Estimate(acc))
	})

	t.Run("高速走行でも下限5を割らない", func(t *testing.T) {
		acc := &model.CellAccumulator{Speeds: []float64{120}, Count: 1}
		assert.Equal(t, 5, estimator.Estimate(acc))
	})

	t.Run("平均速度が使われる", func(t *testing.T) {
		// 平均30km/h → round(95 - 42.5) = 53 (銀行丸めではなくmath.Round)
		acc := &model.CellAccumulator{Speeds: []float64{20, 40}, Count: 2}
		assert.Equal(t, 53, estimator.Estimate(acc))
	})

	t.Run("速度データなしはping密度で推定", func(t *testing.T) {
		// count=2 → 50、count=4 → 60
		assert.Equal(t, 50, estimator.Estimate(&model.CellAccumulator{Count: 2}))
		assert.Equal(t, 60, estimator.Estimate(&model.CellAccumulator{Count: 4}))
	})

	t.Run("密度推定も上下限にクランプされる", func(t *testing.T) {
		assert.Equal(t, 95, estimator.Estimate(&model.CellAccumulator{Count: 50}))
		assert.Equal(t, 45, estimator.Estimate(&model.CellAccumulator{Count: 1}))
	})
}

func TestClampCongestion(t *testing.T) {
	assert.Equal(t, 5, ClampCongestion(-10))
	assert.Equal(t, 5, ClampCongestion(4.9))
	assert.Equal(t, 50, ClampCongestion(50))
	assert.Equal(t, 95, ClampCongestion(95.1))
	assert.Equal(t, 95, ClampCongestion(200))
}
