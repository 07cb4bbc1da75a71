// Package shell renders directives as shell-evaluable text and provides the
// hook snippets (precmd/chpwd for Zsh, PROMPT_COMMAND for Bash, fish_prompt
// and --on-variable for Fish) that call rv on every prompt and directory change.
package shell
