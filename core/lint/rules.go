package lint

// RuleDef describes one validation rule.
type RuleDef struct {
	ID          string
	Name        string
	Severity    Severity
	Description string
}

// Rule IDs.
const (
	RuleMalformedLine = "L001"
	RuleBadID         = "L002"
	RuleIDSequence    = "L003"
	RuleDanglingHead  = "L004"
	RuleSelfHead      = "L005"
	RuleRootCount     = "L006"
	RuleMissingText   = "L007"
	RuleBadHeadValue  = "L008"
	RuleEmptyDocument = "L009"
)

// Rules lists every rule in ID order.
var Rules = []RuleDef{
	{RuleMalformedLine, "malformed-line", SeverityError, "token line does not have exactly ten tab-separated fields"},
	{RuleBadID, "bad-id", SeverityError, "ID is not a word index, multiword range or empty node"},
	{RuleIDSequence, "id-sequence", SeverityError, "word IDs do not run 1..n in order"},
	{RuleDanglingHead, "dangling-head", SeverityError, "HEAD names no token in the sentence"},
	{RuleSelfHead, "self-head", SeverityError, "token is its own head"},
	{RuleRootCount, "root-count", SeverityWarning, "sentence does not have exactly one root"},
	{RuleMissingText, "missing-text", SeverityWarning, "sentence has no # text comment"},
	{RuleBadHeadValue, "bad-head-value", SeverityError, "HEAD is neither _ nor a word index"},
	{RuleEmptyDocument, "empty-document", SeverityError, "input holds no sentences"},
}

var rulesByID = func() map[string]RuleDef {
	m := make(map[string]RuleDef, len(Rules))
	for _, r := range Rules {
		m[r.ID] = r
	}
	return m
}()

// LookupRule returns the rule with the given ID or name.
func LookupRule(key string) (RuleDef, bool) {
	if r, ok := rulesByID[key]; ok {
		return r, true
	}
	for _, r := range Rules {
		if r.Name == key {
			return r, true
		}
	}
	return RuleDef{}, false
}
