package consts

const (
	LastGenerationKey = "drafts:last_generation"
)

const (
	DraftGenerationLock = "lock:drafts:generate"
)
