package progression

import "go.uber.org/zap"

// Classify decides whether numbers form an arithmetic or a geometric
// progression and returns the common difference or ratio. The arithmetic
// check runs first, so a run of equal non-zero values is Arithmetic with a
// step of 0. Comparisons use exact float equality.
func Classify(numbers []float64) (Kind, float64, error) {
	if step, ok := commonDifference(numbers); ok {
		return Arithmetic, step, nil
	}
	if step, ok := commonRatio(numbers); ok {
		return Geometric, step, nil
	}
	return Itemized, 0, &ClassificationError{Numbers: append([]float64(nil), numbers...)}
}

func commonDifference(numbers []float64) (float64, bool) {
	if len(numbers) < 2 {
		return 0, false
	}
	d := numbers[1] - numbers[0]
	for i := 2; i < len(numbers); i++ {
		if numbers[i]-numbers[i-1] != d {
			return 0, false
		}
	}
	return d, true
}

func commonRatio(numbers []float64) (float64, bool) {
	if len(numbers) < 2 || numbers[0] == 0 {
		return 0, false
	}
	r := numbers[1] / numbers[0]
	for i := 2; i < len(numbers); i++ {
		if numbers[i-1] == 0 {
			return 0, false
		}
		if numbers[i]/numbers[i-1] != r {
			return 0, false
		}
	}
	return r, true
}

func classify(numbers []float64, logger *zap.Logger) (Kind, float64, error) {
	kind, step, err := Classify(numbers)
	if err != nil {
		logger.Debug("classification failed", zap.Float64s("numbers", numbers))
		return kind, step, err
	}
	logger.Debug("classified sequence",
		zap.Stringer("kind", kind),
		zap.Float64("step", step))
	return kind, step, nil
}
