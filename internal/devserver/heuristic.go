package devserver

import (
	"regexp"
	"strings"

	"github.com/yildizm/smishguard/internal/api"
)

// signal is one family of suspicious wording
type signal struct {
	reason   string
	weight   float64
	keywords []string
}

var signals = []signal{
	{
		reason: "urgent or threatening wording",
		weight: 0.3,
		keywords: []string{
			"긴급", "즉시", "정지", "차단", "만료", "지금 바로",
			"urgent", "immediately", "suspended", "locked", "expire", "final notice",
		},
	},
	{
		reason: "prize, refund or payment bait",
		weight: 0.3,
		keywords: []string{
			"당첨", "환급", "지원금", "결제", "미납", "송금", "입금",
			"prize", "winner", "refund", "payment", "overdue", "gift card", "transfer",
		},
	},
	{
		reason: "impersonates a parcel, bank or public agency",
		weight: 0.2,
		keywords: []string{
			"택배", "배송", "은행", "검찰", "경찰", "건강보험", "국세청",
			"delivery", "parcel", "bank", "tax office", "police",
		},
	},
	{
		reason: "asks for credentials or personal data",
		weight: 0.3,
		keywords: []string{
			"비밀번호", "인증번호", "주민등록", "계좌번호", "본인확인",
			"password", "verification code", "ssn", "account number", "verify your",
		},
	},
}

var (
	linkPattern      = regexp.MustCompile(`(?i)(https?://|www\.|\b[a-z0-9-]+\.(ly|gl|kr|me|xyz|top|io|co)/)`)
	shortenerPattern = regexp.MustCompile(`(?i)\b(bit\.ly|goo\.gl|t\.co|tinyurl\.com|han\.gl|me2\.do|vo\.la)\b`)
)

const (
	linkWeight      = 0.25
	shortenerWeight = 0.2

	// fraudThreshold and safeThreshold split the score into the three labels
	fraudThreshold = 0.6
	safeThreshold  = 0.2
)

// Classify scores text with a keyword heuristic. It is a stand-in for the
// real model and only aims to produce plausible verdicts.
func Classify(text string) api.AnalysisResult {
	lower := strings.ToLower(text)

	var (
		score   float64
		reasons []string
	)

	for _, s := range signals {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				score += s.weight
				reasons = append(reasons, s.reason)
				break
			}
		}
	}

	switch {
	case shortenerPattern.MatchString(text):
		score += linkWeight + shortenerWeight
		reasons = append(reasons, "contains a shortened link")
	case linkPattern.MatchString(text):
		score += linkWeight
		reasons = append(reasons, "contains a link")
	}

	if score > 1 {
		score = 1
	}
	if reasons == nil {
		reasons = []string{}
	}

	label := api.LabelUnknown
	switch {
	case score >= fraudThreshold:
		label = api.LabelFraudulent
	case score < safeThreshold:
		label = api.LabelNormal
		if len(reasons) == 0 {
			reasons = append(reasons, "no suspicious wording or links found")
		}
	}

	return api.AnalysisResult{Label: label, Score: &score, Reasons: reasons}
}
