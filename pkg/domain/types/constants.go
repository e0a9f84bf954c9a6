package types

// Repository layout folder names
const (
	FolderTrunk    = "trunk"
	FolderBranches = "branches"
	FolderTags     = "tags"
)

// PropertiesFileName is the version-holding file in the project root.
const PropertiesFileName = "gradle.properties"

// VersionKey is the only key rewritten in PropertiesFileName.
const VersionKey = "version"

// Commit messages used for repository mutations
const (
	commitMessagePrefix = "svnrelease: "

	MessageNewBranch     = commitMessagePrefix + "new branch committed"
	MessageNewTag        = commitMessagePrefix + "new tag committed"
	MessageSetTagVersion = commitMessagePrefix + "project version set to tag version"
	MessageSetDevVersion = commitMessagePrefix + "project version set to development version"
)
