// pkg/registry/schema.go
package registry

type AgentRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Agents      []AgentSlot `json:"agents"`
}

type AgentSlot struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Phase       int      `json:"phase"`
	Stage       string   `json:"stage"`
	Role        string   `json:"role"`
	TaskType    string   `json:"taskType"`
	ErrorCodes  []string `json:"errorCodes"`
	Timeout     string   `json:"timeout"`
	Tags        []string `json:"tags"`
}
