package llm

// demoProvider is the null provider: always available, never yields a
// live handle. Selecting it forces offline scripted answers deliberately.
type demoProvider struct{}

func (demoProvider) Name() string { return "demo" }

func (demoProvider) Available() bool { return true }

func (demoProvider) Create() (Handle, error) { return nil, nil }
