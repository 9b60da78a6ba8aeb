package placement

import (
	"context"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/utils"
)

//go:embed company_check.md
var companyCheckTemplate string

// Validator asks the model whether a company is known to recruit on
// campus. The model's word is the only ground truth here; there is no
// local company list to check against.
type Validator struct {
	generator contentGenerator
	logger    *zap.Logger
}

// NewValidator creates a company validator backed by the given generator.
func NewValidator(generator contentGenerator, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{generator: generator, logger: logger}
}

// IsRecognizedCompany returns true iff the trimmed, case-folded reply is
// the literal VALID token. Sentinel errors, extra words and every other
// deviation count as not recognized.
func (v *Validator) IsRecognizedCompany(ctx context.Context, name string) bool {
	prompt := strings.ReplaceAll(companyCheckTemplate, "{{COMPANY}}", name)

	reply := v.generator.Generate(ctx, prompt)

	v.logger.Debug("company check response",
		zap.String("company", name),
		zap.String("response_preview", utils.TruncateForLog(reply, maxLogPreview)),
	)

	return strings.EqualFold(strings.TrimSpace(reply), "valid")
}
