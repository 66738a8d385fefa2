// Package strategy composes independent impact-detection algorithms. Each
// strategy sees the same inputs and contributes candidate test modules; the
// composite unions the results. Variants are a closed set of concrete types
// behind one interface, assembled at construction time.
package strategy

// Inputs carries everything a strategy may consult for one run.
type Inputs struct {
	ChangedFiles   []string
	ChangedModules []string
	Package        string
	TestsPackage   string
	RootDir        string
}

// Strategy is one self-contained algorithm for detecting impacted tests.
type Strategy interface {
	FindImpactedTests(in Inputs) ([]string, error)
}
