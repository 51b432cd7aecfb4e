package memory

const globalSkeleton = `# Pi Global Memory

This file contains facts and learnings about your machine and preferences.
Pi reads this at the start of every session.

## Environment

## Tools

## Preferences

## Gotchas
`

const projectSkeleton = `# Pi Project Memory

This file contains facts and learnings specific to this project.
Pi reads this at the start of every session in this directory.

## Project

## Environment

## Gotchas
`

// Skeleton returns the default document written the first time a scope's
// file is created. Unknown scopes get an empty document.
func Skeleton(scope Scope) string {
	switch scope {
	case ScopeGlobal:
		return globalSkeleton
	case ScopeProject:
		return projectSkeleton
	}
	return ""
}
