package metrics

// Metric names used in reports.
const (
	NameAccuracy         = "accuracy"
	NameSpecificity      = "specificity"
	NameSensitivity      = "sensitivity"
	NameF1               = "f1"
	NameROCAUC           = "auroc"
	NameAveragePrecision = "auprc"
)

// Names lists the metric names in report order.
func Names() []string {
	return []string{NameAccuracy, NameSpecificity, NameSensitivity, NameF1, NameROCAUC, NameAveragePrecision}
}

// Scores bundles all metrics for one partition.
type Scores struct {
	Confusion        ConfusionMatrix `json:"confusion"`
	Accuracy         Value           `json:"accuracy"`
	Specificity      Value           `json:"specificity"`
	Sensitivity      Value           `json:"sensitivity"`
	F1               Value           `json:"f1"`
	ROCAUC           Value           `json:"auroc"`
	AveragePrecision Value           `json:"auprc"`
}

// Evaluate computes every metric. predicted are hard labels, scores the
// positive class probabilities for the same examples.
func Evaluate(labels, predicted []int, scores []float64) (Scores, error) {
	cm, err := Confusion(labels, predicted)
	if err != nil {
		return Scores{}, err
	}
	auc, err := ROCAUC(labels, scores)
	if err != nil {
		return Scores{}, err
	}
	ap, err := AveragePrecision(labels, scores)
	if err != nil {
		return Scores{}, err
	}

	return Scores{
		Confusion:        cm,
		Accuracy:         Accuracy(cm),
		Specificity:      Specificity(cm),
		Sensitivity:      Sensitivity(cm),
		F1:               F1(cm),
		ROCAUC:           auc,
		AveragePrecision: ap,
	}, nil
}

// Get returns a metric by name.
func (s Scores) Get(name string) (Value, bool) {
	switch name {
	case NameAccuracy:
		return s.Accuracy, true
	case NameSpecificity:
		return s.Specificity, true
	case NameSensitivity:
		return s.Sensitivity, true
	case NameF1:
		return s.F1, true
	case NameROCAUC:
		return s.ROCAUC, true
	case NameAveragePrecision:
		return s.AveragePrecision, true
	default:
		return Undefined, false
	}
}
