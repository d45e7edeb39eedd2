package calculator

// CalculateRequest is the JSON body for POST /calculator/calculate.
type CalculateRequest struct {
	A        float64  `json:"a"`
	B        float64  `json:"b"`
	Operator Operator `json:"operator"` // "+", "-", "*", "/", "^"
}

// CalculateResponse is the JSON response for POST /calculator/calculate.
// Display is "Error" when the fold fails; Error then carries the reason.
type CalculateResponse struct {
	Operator Operator `json:"operator"`
	A        float64  `json:"a"`
	B        float64  `json:"b"`
	Display  string   `json:"display"`
	Error    string   `json:"error,omitempty"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Tokens []string `json:"tokens"`
}

// EvaluateStep records the display after one token.
type EvaluateStep struct {
	Token   string `json:"token"`
	Kind    string `json:"kind"`
	Display string `json:"display"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Steps   []EvaluateStep `json:"steps"`
	Display string         `json:"display"`
}

// PressRequest is the JSON body for POST /calculator/sessions/{id}/press and
// for messages on the keypad websocket.
type PressRequest struct {
	Token string `json:"token"`
}

// KeypadResponse is the JSON response for GET /calculator/keypad.
type KeypadResponse struct {
	Scientific bool       `json:"scientific"`
	Rows       [][]Button `json:"rows"`
}

// DisplayMessage is sent over the keypad websocket.
type DisplayMessage struct {
	Display string `json:"display,omitempty"`
	Error   string `json:"error,omitempty"`
}
