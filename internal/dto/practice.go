package dto

// TopicResponse represents a topic in the API response
type TopicResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PreferredApproach string `json:"teacher_preferred_approach,omitempty"`
}

// PatternResponse represents a pattern in the API response
type PatternResponse struct {
	ID                string `json:"id"`
	TopicID           string `json:"topic_id"`
	Pattern           string `json:"pattern"`
	PreferredApproach string `json:"teacher_preferred_approach,omitempty"`
}

// QuestionResponse represents a full question in the API response
type QuestionResponse struct {
	ID             string `json:"id"`
	TopicID        string `json:"topic_id"`
	PatternID      string `json:"pattern_id"`
	Difficulty     string `json:"difficulty"`
	QuestionText   string `json:"question_text"`
	CorrectAnswer  string `json:"correct_answer"`
	HintStats      string `json:"hint_stats"`
	HintPython     string `json:"hint_python"`
	SolutionStats  string `json:"solution_stats"`
	SolutionPython string `json:"solution_python"`
	Solution       string `json:"solution"`
}

// QuestionSummaryResponse is the id + text projection for listings
type QuestionSummaryResponse struct {
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
}

// NextQuestionRequest asks for the next unattempted question
// @Description Request body for the next-question selection
type NextQuestionRequest struct {
	UserID     string `json:"user_id"`
	TopicID    string `json:"topic_id"`
	PatternID  string `json:"pattern_id"`
	Difficulty string `json:"difficulty"`
}

// SubmitAnswerRequest carries one free-text submission for grading
type SubmitAnswerRequest struct {
	UserID         string `json:"user_id"`
	TopicID        string `json:"topic_id"`
	PatternID      string `json:"pattern_id"`
	QuestionID     string `json:"question_id"`
	Difficulty     string `json:"difficulty"`
	UserAnswer     string `json:"user_answer"`
	StudentRemark  string `json:"student_remark"`
	UsedHintStats  bool   `json:"used_hint_stats"`
	UsedHintPython bool   `json:"used_hint_python"`
}

// SubmitAnswerResponse returns the verdict plus the full question so
// the caller can reveal the solution immediately
type SubmitAnswerResponse struct {
	Correct   bool             `json:"correct"`
	Remark    string           `json:"remark"`
	AttemptID string           `json:"attempt_id"`
	Question  QuestionResponse `json:"question"`
}

// UpdateRemarkRequest amends the student remark on an attempt
type UpdateRemarkRequest struct {
	AttemptID     string `json:"attempt_id"`
	StudentRemark string `json:"student_remark"`
}

// SuggestPatternsRequest asks for novel pattern templates for a topic
type SuggestPatternsRequest struct {
	TopicID string `json:"topic_id"`
}

// SuggestPatternsResponse returns current patterns plus LLM additions;
// nothing is persisted by this call
type SuggestPatternsResponse struct {
	Existing  []PatternResponse `json:"existing"`
	Additions []string          `json:"additions"`
}

// SavePatternsRequest persists instructor-selected pattern texts
type SavePatternsRequest struct {
	TopicID  string   `json:"topic_id"`
	Patterns []string `json:"patterns"`
}

// SavePatternsResponse reports how many patterns were actually new
type SavePatternsResponse struct {
	Success  bool `json:"success"`
	Inserted int  `json:"inserted"`
}

// GenerateQuestionsRequest asks for an instructor preview batch
type GenerateQuestionsRequest struct {
	TopicID    string `json:"topic_id"`
	PatternID  string `json:"pattern_id"`
	Difficulty string `json:"difficulty"`
}

// GeneratedQuestionPayload is one question candidate, either previewed
// to or curated by the instructor
type GeneratedQuestionPayload struct {
	QuestionText   string `json:"question_text"`
	CorrectAnswer  string `json:"correct_answer"`
	HintStats      string `json:"hint_stats"`
	HintPython     string `json:"hint_python"`
	SolutionStats  string `json:"solution_stats"`
	SolutionPython string `json:"solution_python"`
	Solution       string `json:"solution"`
}

// SaveQuestionsRequest persists curated questions
type SaveQuestionsRequest struct {
	TopicID    string                     `json:"topic_id"`
	PatternID  string                     `json:"pattern_id"`
	Difficulty string                     `json:"difficulty"`
	Questions  []GeneratedQuestionPayload `json:"questions"`
}

// SaveQuestionsResponse reports how many questions were actually new
type SaveQuestionsResponse struct {
	Success  bool `json:"success"`
	Inserted int  `json:"inserted"`
}

// UpdateApproachRequest overwrites a preferred-approach note
type UpdateApproachRequest struct {
	Approach string `json:"approach"`
}

// SuccessResponse is the generic acknowledgement body
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
