package service

import (
	"math"

	"navify-backend/internal/domain/model"
)

// CongestionEstimator セルのping統計を渋滞スコアに変換する純粋関数
type CongestionEstimator struct{}

// NewCongestionEstimator 新しいCongestionEstimatorを作成する
func NewCongestionEstimator() *CongestionEstimator {
	return &CongestionEstimator{}
}

// Estimate 渋滞スコア[5,95]を計算する
// 速度データあり: 0km/h→95（停滞）、60km/h以上→約10（順調）の線形補間
// 速度データなし: ping密度を代理指標にする（同時報告が多い＝停止車両が多い）
func (e *CongestionEstimator) Estimate(acc *model.CellAccumulator) int {
	if len(acc.Speeds) > 0 {
		sum := 0.0
		for _, s := range acc.Speeds {
			sum += s
		}
		avg := sum / float64(len(acc.Speeds))
		return ClampCongestion(math.Round(95 - (avg/60)*85))
	}
	return ClampCongestion(math.Round(50 + float64(acc.Count-2)*5))
}

// ClampCongestion スコアを[5,95]にクランプする
func ClampCongestion(v float64) int {
	if v < model.CongestionMin {
		return model.CongestionMin
	}
	if v > model.CongestionMax {
		return model.CongestionMax
	}
	return int(v)
}
