package resumedata

// knownSkills are reported in this order when found in the skills section.
var knownSkills = []string{
	"python", "java", "javascript", "react", "node", "sql", "aws", "azure", "mern", "spring boot",
	"django", "nextjs", "vue", "angular", ".net", "nodejs", "expressjs",
	"docker", "kubernetes", "git", "linux", "agile", "scrum", "html", "css", "flask",
	"sonarqube", "selenium", "php", "laravel", "c++", "c", "kotlin", "react-native", "flutter",
	"mongodb", "mysql", "postgresql", "redis", "elasticsearch", "tensorflow", "powerbi",
	"pandas", "numpy", "openai", "wordpress", "back-end",
	"pytorch", "machine learning", "data science", "artificial intelligence", "rest api",
	"database",
}
