// Package userconfig defines the typed shapes of a React Native project
// configuration and of a dependency configuration, the schemas that produce
// them, and the default used when a dependency declares nothing.
package userconfig

import "rnconfig/internal/rawconfig"

// UserConfig is the validated configuration of the root project.
type UserConfig struct {
	ReactNativePath string                        `mapstructure:"reactNativePath" json:"reactNativePath,omitempty" yaml:"reactNativePath,omitempty"`
	Project         ProjectConfig                 `mapstructure:"project" json:"project" yaml:"project"`
	Dependencies    map[string]DependencyOverride `mapstructure:"dependencies" json:"dependencies" yaml:"dependencies"`
	Assets          []string                      `mapstructure:"assets" json:"assets" yaml:"assets"`
	Commands        []Command                     `mapstructure:"commands" json:"commands" yaml:"commands"`
	Platforms       map[string]PlatformConfig     `mapstructure:"platforms" json:"platforms" yaml:"platforms"`
	Extra           map[string]any                `mapstructure:",remain" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// ProjectConfig holds per-platform project settings.
type ProjectConfig struct {
	IOS     *IOSProjectParams     `mapstructure:"ios" json:"ios,omitempty" yaml:"ios,omitempty"`
	Android *AndroidProjectParams `mapstructure:"android" json:"android,omitempty" yaml:"android,omitempty"`
	Other   map[string]any        `mapstructure:",remain" json:"other,omitempty" yaml:"other,omitempty"`
}

type IOSProjectParams struct {
	SourceDir                 string   `mapstructure:"sourceDir" json:"sourceDir,omitempty" yaml:"sourceDir,omitempty"`
	WatchModeCommandParams    []string `mapstructure:"watchModeCommandParams" json:"watchModeCommandParams,omitempty" yaml:"watchModeCommandParams,omitempty"`
	AutomaticPodsInstallation *bool    `mapstructure:"automaticPodsInstallation" json:"automaticPodsInstallation,omitempty" yaml:"automaticPodsInstallation,omitempty"`
	Assets                    []string `mapstructure:"assets" json:"assets,omitempty" yaml:"assets,omitempty"`
}

type AndroidProjectParams struct {
	SourceDir               string   `mapstructure:"sourceDir" json:"sourceDir,omitempty" yaml:"sourceDir,omitempty"`
	AppName                 string   `mapstructure:"appName" json:"appName,omitempty" yaml:"appName,omitempty"`
	ManifestPath            string   `mapstructure:"manifestPath" json:"manifestPath,omitempty" yaml:"manifestPath,omitempty"`
	PackageName             string   `mapstructure:"packageName" json:"packageName,omitempty" yaml:"packageName,omitempty"`
	DependencyConfiguration string   `mapstructure:"dependencyConfiguration" json:"dependencyConfiguration,omitempty" yaml:"dependencyConfiguration,omitempty"`
	WatchModeCommandParams  []string `mapstructure:"watchModeCommandParams" json:"watchModeCommandParams,omitempty" yaml:"watchModeCommandParams,omitempty"`
	Assets                  []string `mapstructure:"assets" json:"assets,omitempty" yaml:"assets,omitempty"`
}

// DependencyOverride lets the project override how a dependency is linked.
// A nil platform entry disables the dependency on that platform.
type DependencyOverride struct {
	Root      string         `mapstructure:"root" json:"root,omitempty" yaml:"root,omitempty"`
	Platforms map[string]any `mapstructure:"platforms" json:"platforms,omitempty" yaml:"platforms,omitempty"`
}

// UserDependencyConfig is the validated configuration a package ships.
type UserDependencyConfig struct {
	Dependency DependencyDeclaration     `mapstructure:"dependency" json:"dependency" yaml:"dependency"`
	Commands   []Command                 `mapstructure:"commands" json:"commands" yaml:"commands"`
	Platforms  map[string]PlatformConfig `mapstructure:"platforms" json:"platforms" yaml:"platforms"`
	Extra      map[string]any            `mapstructure:",remain" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// DependencyDeclaration describes how the package integrates per platform.
type DependencyDeclaration struct {
	Platforms DependencyPlatforms `mapstructure:"platforms" json:"platforms" yaml:"platforms"`
}

type DependencyPlatforms struct {
	IOS     *IOSDependencyParams     `mapstructure:"ios" json:"ios,omitempty" yaml:"ios,omitempty"`
	Android *AndroidDependencyParams `mapstructure:"android" json:"android,omitempty" yaml:"android,omitempty"`
	Other   map[string]any           `mapstructure:",remain" json:"other,omitempty" yaml:"other,omitempty"`
}

type IOSDependencyParams struct {
	ScriptPhases   []map[string]any `mapstructure:"scriptPhases" json:"scriptPhases,omitempty" yaml:"scriptPhases,omitempty"`
	Configurations []string         `mapstructure:"configurations" json:"configurations,omitempty" yaml:"configurations,omitempty"`
}

type AndroidDependencyParams struct {
	SourceDir                     string   `mapstructure:"sourceDir" json:"sourceDir,omitempty" yaml:"sourceDir,omitempty"`
	ManifestPath                  string   `mapstructure:"manifestPath" json:"manifestPath,omitempty" yaml:"manifestPath,omitempty"`
	PackageName                   string   `mapstructure:"packageName" json:"packageName,omitempty" yaml:"packageName,omitempty"`
	PackageImportPath             string   `mapstructure:"packageImportPath" json:"packageImportPath,omitempty" yaml:"packageImportPath,omitempty"`
	PackageInstance               string   `mapstructure:"packageInstance" json:"packageInstance,omitempty" yaml:"packageInstance,omitempty"`
	DependencyConfiguration       string   `mapstructure:"dependencyConfiguration" json:"dependencyConfiguration,omitempty" yaml:"dependencyConfiguration,omitempty"`
	BuildTypes                    []string `mapstructure:"buildTypes" json:"buildTypes,omitempty" yaml:"buildTypes,omitempty"`
	LibraryName                   *string  `mapstructure:"libraryName" json:"libraryName,omitempty" yaml:"libraryName,omitempty"`
	ComponentDescriptors          []string `mapstructure:"componentDescriptors" json:"componentDescriptors,omitempty" yaml:"componentDescriptors,omitempty"`
	CMakeListsPath                *string  `mapstructure:"cmakeListsPath" json:"cmakeListsPath,omitempty" yaml:"cmakeListsPath,omitempty"`
	CxxModuleCMakeListsModuleName *string  `mapstructure:"cxxModuleCMakeListsModuleName" json:"cxxModuleCMakeListsModuleName,omitempty" yaml:"cxxModuleCMakeListsModuleName,omitempty"`
	CxxModuleCMakeListsPath       *string  `mapstructure:"cxxModuleCMakeListsPath" json:"cxxModuleCMakeListsPath,omitempty" yaml:"cxxModuleCMakeListsPath,omitempty"`
	CxxModuleHeaderName           *string  `mapstructure:"cxxModuleHeaderName" json:"cxxModuleHeaderName,omitempty" yaml:"cxxModuleHeaderName,omitempty"`
	IsPureCxxDependency           *bool    `mapstructure:"isPureCxxDependency" json:"isPureCxxDependency,omitempty" yaml:"isPureCxxDependency,omitempty"`
}

// PlatformConfig is a platform contributed by a package (e.g. out-of-tree
// platforms such as windows or macos).
type PlatformConfig struct {
	NpmPackageName   string          `mapstructure:"npmPackageName" json:"npmPackageName,omitempty" yaml:"npmPackageName,omitempty"`
	DependencyConfig rawconfig.Func `mapstructure:"dependencyConfig" json:"dependencyConfig,omitempty" yaml:"dependencyConfig,omitempty"`
	ProjectConfig    rawconfig.Func `mapstructure:"projectConfig" json:"projectConfig,omitempty" yaml:"projectConfig,omitempty"`
	LinkConfig       rawconfig.Func `mapstructure:"linkConfig" json:"linkConfig,omitempty" yaml:"linkConfig,omitempty"`
}

// Command is a CLI command contributed by the project or a package.
type Command struct {
	Name        string           `mapstructure:"name" json:"name" yaml:"name"`
	Description string           `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Usage       string           `mapstructure:"usage" json:"usage,omitempty" yaml:"usage,omitempty"`
	Func        rawconfig.Func   `mapstructure:"func" json:"func" yaml:"func"`
	Options     []CommandOption  `mapstructure:"options" json:"options,omitempty" yaml:"options,omitempty"`
	Examples    []CommandExample `mapstructure:"examples" json:"examples,omitempty" yaml:"examples,omitempty"`
}

type CommandOption struct {
	Name        string         `mapstructure:"name" json:"name" yaml:"name"`
	Description string         `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Parse       rawconfig.Func `mapstructure:"parse" json:"parse,omitempty" yaml:"parse,omitempty"`
	Default     any            `mapstructure:"default" json:"default,omitempty" yaml:"default,omitempty"`
}

type CommandExample struct {
	Desc string `mapstructure:"desc" json:"desc" yaml:"desc"`
	Cmd  string `mapstructure:"cmd" json:"cmd" yaml:"cmd"`
}
