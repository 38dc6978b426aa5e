package userconfig

import (
	"sync"

	"rnconfig/internal/schema"
)

func emptyObject() map[string]any { return map[string]any{} }

func commandSchema() *schema.Schema {
	option := schema.Object().Keys(
		schema.Key("name", schema.String().Required()),
		schema.Key("description", schema.String()),
		schema.Key("parse", schema.Func()),
		schema.Key("default", schema.Alternatives(
			schema.Bool(), schema.Number(), schema.String(), schema.Func(),
		)),
	)
	example := schema.Object().Keys(
		schema.Key("desc", schema.String().Required()),
		schema.Key("cmd", schema.String().Required()),
	)
	return schema.Object().Keys(
		schema.Key("name", schema.String().Required()),
		schema.Key("description", schema.String()),
		schema.Key("usage", schema.String()),
		schema.Key("func", schema.Func().Required()),
		schema.Key("options", schema.Array().Items(option)),
		schema.Key("examples", schema.Array().Items(example)),
	)
}

func platformSchema() *schema.Schema {
	return schema.Object().Keys(
		schema.Key("npmPackageName", schema.String()),
		schema.Key("dependencyConfig", schema.Func()),
		schema.Key("projectConfig", schema.Func()),
		schema.Key("linkConfig", schema.Func()),
	)
}

func stringList() *schema.Schema {
	return schema.Array().Items(schema.String())
}

func optionalString() *schema.Schema {
	return schema.String().AllowNull()
}

// DependencySchema returns the schema a package's react-native.config must
// satisfy.
var DependencySchema = sync.OnceValue(buildDependencySchema)

// ProjectSchema returns the schema the root project's configuration must
// satisfy. An absent configuration validates to all defaults.
var ProjectSchema = sync.OnceValue(buildProjectSchema)

func buildDependencySchema() *schema.Schema {
	ios := schema.Object().Keys(
		schema.Key("scriptPhases", schema.Array().Items(schema.Object().Unknown(true))),
		schema.Key("configurations", stringList()),
	).AllowNull()

	android := schema.Object().Keys(
		schema.Key("sourceDir", schema.String()),
		schema.Key("manifestPath", schema.String()),
		schema.Key("packageName", schema.String()),
		schema.Key("packageImportPath", schema.String()),
		schema.Key("packageInstance", schema.String()),
		schema.Key("dependencyConfiguration", schema.String()),
		schema.Key("buildTypes", stringList().Default([]any{})),
		schema.Key("libraryName", optionalString()),
		schema.Key("componentDescriptors", stringList().AllowNull()),
		schema.Key("cmakeListsPath", optionalString()),
		schema.Key("cxxModuleCMakeListsModuleName", optionalString()),
		schema.Key("cxxModuleCMakeListsPath", optionalString()),
		schema.Key("cxxModuleHeaderName", optionalString()),
		schema.Key("isPureCxxDependency", schema.Bool()),
	).AllowNull()

	return schema.Object().Keys(
		schema.Key("dependency", schema.Object().Keys(
			schema.Key("platforms", schema.Object().Keys(
				schema.Key("ios", ios),
				schema.Key("android", android),
			).Pattern(schema.Any()).DefaultFromKeys()),
		).DefaultFromKeys()),
		schema.Key("platforms", schema.Object().Pattern(platformSchema()).Default(emptyObject())),
		schema.Key("commands", schema.Array().Items(commandSchema()).Default([]any{})),
	).Unknown(true).DefaultFromKeys()
}

func buildProjectSchema() *schema.Schema {
	ios := schema.Object().Keys(
		schema.Key("sourceDir", schema.String()),
		schema.Key("watchModeCommandParams", stringList()),
		schema.Key("automaticPodsInstallation", schema.Bool()),
		schema.Key("assets", stringList()),
	).Default(emptyObject())

	android := schema.Object().Keys(
		schema.Key("sourceDir", schema.String()),
		schema.Key("appName", schema.String()),
		schema.Key("manifestPath", schema.String()),
		schema.Key("packageName", schema.String()),
		schema.Key("dependencyConfiguration", schema.String()),
		schema.Key("watchModeCommandParams", stringList()),
		schema.Key("assets", stringList()),
	).Default(emptyObject())

	dependency := schema.Object().Keys(
		schema.Key("root", schema.String()),
		schema.Key("platforms", schema.Object().Keys(
			schema.Key("ios", schema.Object().Unknown(true).AllowNull()),
			schema.Key("android", schema.Object().Unknown(true).AllowNull()),
		).Pattern(schema.Any())),
	)

	return schema.Object().Keys(
		schema.Key("dependencies", schema.Object().Pattern(dependency).Default(emptyObject())),
		schema.Key("reactNativePath", schema.String()),
		schema.Key("project", schema.Object().Keys(
			schema.Key("ios", ios),
			schema.Key("android", android),
		).Pattern(schema.Any()).DefaultFromKeys()),
		schema.Key("assets", stringList().Default([]any{})),
		schema.Key("commands", schema.Array().Items(commandSchema()).Default([]any{})),
		schema.Key("platforms", schema.Object().Pattern(platformSchema()).Default(emptyObject())),
	).Unknown(true).DefaultFromKeys()
}
