package model

import (
	"cmp"
	"math"
	"slices"
)

// Softmax turns raw scores into a probability distribution. The maximum is
// subtracted first so large logits do not overflow.
func Softmax(scores []float32) []float64 {
	if len(scores) == 0 {
		return nil
	}

	maxScore := float64(scores[0])
	for _, s := range scores[1:] {
		maxScore = math.Max(maxScore, float64(s))
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(float64(s) - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}

	return probs
}

// TopK returns the k most probable labels, highest first. Equal probabilities
// keep label order. k is capped at the number of labels.
func TopK(probs []float64, labels []string, k int) []Prediction {
	n := min(len(probs), len(labels))
	k = min(k, n)
	if k < 1 {
		return nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(probs[b], probs[a])
	})

	ranked := make([]Prediction, k)
	for i, idx := range indices[:k] {
		ranked[i] = Prediction{
			Class:      labels[idx],
			Confidence: percent(probs[idx]),
		}
	}

	return ranked
}

func percent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
