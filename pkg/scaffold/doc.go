// Package scaffold drives an interactive session that produces a structure
// document. Prompts go through PromptDriver; SurveyDriver is the terminal
// implementation.
package scaffold
