// Package glsl holds the GLSL sources for the rig, shadow and particle
// programs.
package glsl

import "strconv"

// MaxPointLights must match the point light arrays in RigFragment.
const MaxPointLights = 4

// RigVertex transforms robot parts and the ground.
const RigVertex = `#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uNormal;
uniform mat4 uViewProj;
uniform mat4 uLightSpace;

out vec3 vWorldPos;
out vec3 vNormal;
out vec4 vLightPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = normalize(mat3(uNormal) * aNormal);
	vLightPos = uLightSpace * world;
	gl_Position = uViewProj * world;
}
`

// RigFragment lights a part with ambient, key, fill and point lights, adds
// emission and tone maps the result.
var RigFragment = `#version 410 core

#define MAX_POINT_LIGHTS ` + strconv.Itoa(MaxPointLights) + `

in vec3 vWorldPos;
in vec3 vNormal;
in vec4 vLightPos;

uniform vec3 uColor;
uniform vec3 uEmissive;
uniform float uMetalness;
uniform float uRoughness;
uniform float uOpacity;

uniform vec3 uCameraPos;
uniform vec3 uAmbient;
uniform vec3 uKeyDir;
uniform vec3 uKeyColor;
uniform vec3 uFillDir;
uniform vec3 uFillColor;

uniform vec3 uPointPos[MAX_POINT_LIGHTS];
uniform vec3 uPointColor[MAX_POINT_LIGHTS];
uniform float uPointRange[MAX_POINT_LIGHTS];
uniform int uPointCount;

uniform float uExposure;

uniform sampler2DShadow uShadowMap;
uniform int uShadowEnabled;
uniform float uShadowTexel;
uniform float uShadowRadius;

out vec4 FragColor;

// keyVisibility is 1 where the key light reaches the fragment.
float keyVisibility(vec3 n) {
	if (uShadowEnabled == 0) {
		return 1.0;
	}
	vec3 p = vLightPos.xyz / vLightPos.w * 0.5 + 0.5;
	if (p.z > 1.0) {
		return 1.0;
	}
	float bias = max(0.002 * (1.0 - dot(n, normalize(uKeyDir))), 0.0005);
	float spread = uShadowTexel * max(uShadowRadius, 1.0) * 0.5;
	float lit = 0.0;
	for (int x = -1; x <= 1; x++) {
		for (int y = -1; y <= 1; y++) {
			lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * spread, p.z - bias));
		}
	}
	return lit / 9.0;
}

vec3 shade(vec3 n, vec3 v, vec3 l, vec3 radiance) {
	float ndl = max(dot(n, l), 0.0);
	vec3 h = normalize(l + v);
	float shininess = mix(256.0, 4.0, uRoughness);
	float spec = pow(max(dot(n, h), 0.0), shininess) * (1.0 - uRoughness);
	vec3 specColor = mix(vec3(0.04), uColor, uMetalness);
	vec3 diffuse = uColor * (1.0 - uMetalness);
	return (diffuse * ndl + specColor * spec) * radiance;
}

vec3 aces(vec3 x) {
	return clamp((x * (2.51 * x + 0.03)) / (x * (2.43 * x + 0.59) + 0.14), 0.0, 1.0);
}

void main() {
	vec3 n = normalize(vNormal);
	vec3 v = normalize(uCameraPos - vWorldPos);

	vec3 color = uAmbient * uColor;
	color += shade(n, v, normalize(uKeyDir), uKeyColor) * keyVisibility(n);
	color += shade(n, v, normalize(uFillDir), uFillColor);

	for (int i = 0; i < uPointCount; i++) {
		vec3 d = uPointPos[i] - vWorldPos;
		float dist = length(d);
		float falloff = clamp(1.0 - dist / uPointRange[i], 0.0, 1.0);
		color += shade(n, v, d / max(dist, 1e-4), uPointColor[i] * falloff * falloff);
	}

	color += uEmissive;
	FragColor = vec4(aces(color * uExposure), uOpacity);
}
`

// ShadowVertex writes light-space depth for the shadow map.
const ShadowVertex = `#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uLightSpace;

void main() {
	gl_Position = uLightSpace * uModel * vec4(aPos, 1.0);
}
`

// ShadowFragment is empty; only depth is written.
const ShadowFragment = `#version 410 core

void main() {
}
`

// ParticleVertex draws instanced whirlpool boxes.
const ParticleVertex = `#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in mat4 aModel;
layout (location = 6) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec3 vColor;

void main() {
	vNormal = normalize(mat3(aModel) * aNormal);
	vColor = aColor;
	gl_Position = uViewProj * aModel * vec4(aPos, 1.0);
}
`

// ParticleFragment tints particles with warm light from the front and cool
// light from the left.
const ParticleFragment = `#version 410 core

in vec3 vNormal;
in vec3 vColor;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 warm = vec3(1.0, 0.376, 0.0) * max(dot(n, vec3(0.0, 0.0, 1.0)), 0.0);
	vec3 cool = vec3(0.0, 0.0, 1.0) * 0.5 * max(dot(n, vec3(-1.0, 0.0, 0.0)), 0.0);
	FragColor = vec4(vColor * (vec3(0.5) + warm + cool), 1.0);
}
`
