package main

import (
	"context"
	"os"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/database"
	"ai-tutor-be/pkg/embedding"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

type corpusSection struct {
	Content string
	Section string
	Week    string
	Topic   string
}

// Chapter 1 course material for Physical AI and Humanoid Robotics.
var chapter1Sections = []corpusSection{
	{
		Content: "Physical AI represents artificial intelligence systems that exist in and interact with the physical world. Unlike traditional AI that operates purely in digital spaces, Physical AI must understand physics, navigate real environments, and manipulate objects. This requires embodied intelligence - AI integrated with robotic systems that can perceive, reason about, and act upon the physical world.",
		Section: "Introduction to Physical AI",
		Week:    "1",
		Topic:   "Embodied Intelligence",
	},
	{
		Content: "Humanoid robotics involves creating robots with human-like form factors, enabling them to operate in environments designed for humans. Key challenges include bipedal locomotion, dexterous manipulation, human-robot interaction, and adaptive behavior in unstructured environments.",
		Section: "Introduction to Physical AI",
		Week:    "1",
		Topic:   "Humanoid Robotics",
	},
	{
		Content: "ROS 2 (Robot Operating System 2) is the middleware framework that provides communication infrastructure for robotics applications. It uses a distributed architecture where processes communicate via nodes. Nodes are independent processes that perform specific tasks and communicate using topics (publish-subscribe), services (request-response), and actions (long-running tasks with feedback).",
		Section: "ROS 2 Fundamentals",
		Week:    "2-4",
		Topic:   "ROS 2 Architecture",
	},
	{
		Content: "ROS 2 topics enable asynchronous, one-to-many communication using the publish-subscribe pattern. Publishers send messages on named topics, and subscribers receive them. Common message types include sensor_msgs (LiDAR, cameras), geometry_msgs (poses, velocities), and custom messages defined in .msg files.",
		Section: "ROS 2 Fundamentals",
		Week:    "2-4",
		Topic:   "ROS 2 Topics",
	},
	{
		Content: "URDF (Unified Robot Description Format) is an XML format for describing robot kinematics and dynamics. It defines links (rigid bodies), joints (connections between links), sensors, and visual/collision geometry. URDF files are essential for simulation and visualization in Gazebo and RViz.",
		Section: "ROS 2 Fundamentals",
		Week:    "2-4",
		Topic:   "URDF",
	},
	{
		Content: "rclpy is the Python client library for ROS 2. It provides APIs for creating nodes, publishers, subscribers, services, and actions. Example: rclpy.init() initializes the ROS 2 context, Node() creates a node, create_publisher() creates a publisher, and spin() keeps the node running.",
		Section: "ROS 2 Fundamentals",
		Week:    "2-4",
		Topic:   "rclpy Programming",
	},
	{
		Content: "Gazebo is an open-source physics simulator for robotics. It simulates rigid body dynamics, sensor models (LiDAR, cameras, IMU, depth), and environmental conditions. Gazebo integrates with ROS 2 via gazebo_ros packages, allowing robots to be tested in simulation before physical deployment.",
		Section: "Digital Twins",
		Week:    "5-7",
		Topic:   "Gazebo Simulation",
	},
	{
		Content: "Unity is a real-time 3D development platform increasingly used for robotics simulation. Unity Robotics Hub provides ROS integration, enabling high-fidelity rendering, synthetic data generation for ML training, and realistic physics simulation. Unity excels at visual simulation and can generate photorealistic synthetic datasets.",
		Section: "Digital Twins",
		Week:    "5-7",
		Topic:   "Unity Simulation",
	},
	{
		Content: "LiDAR (Light Detection and Ranging) sensors emit laser pulses and measure return time to create 3D point clouds. In simulation, LiDAR is modeled with ray casting. Common ROS message type: sensor_msgs/PointCloud2. Used for SLAM, obstacle detection, and navigation.",
		Section: "Digital Twins",
		Week:    "5-7",
		Topic:   "Sensor Simulation - LiDAR",
	},
	{
		Content: "Depth cameras (like Intel RealSense) provide RGB-D data: color images plus per-pixel depth information. They enable 3D perception, object detection, and manipulation planning. ROS message types: sensor_msgs/Image (RGB), sensor_msgs/Image (depth), sensor_msgs/PointCloud2 (3D points).",
		Section: "Digital Twins",
		Week:    "5-7",
		Topic:   "Sensor Simulation - Depth Cameras",
	},
	{
		Content: "IMU (Inertial Measurement Unit) sensors measure acceleration and angular velocity. They're crucial for robot pose estimation and balance control in humanoid robots. ROS message type: sensor_msgs/Imu. Simulated IMUs add realistic noise models to match physical sensors.",
		Section: "Digital Twins",
		Week:    "5-7",
		Topic:   "Sensor Simulation - IMU",
	},
	{
		Content: "NVIDIA Isaac Sim is a scalable robotics simulation platform built on NVIDIA Omniverse. It provides photorealistic rendering, accurate physics simulation, and synthetic data generation for AI training. Isaac Sim supports ROS 2 integration and can simulate complex environments with multiple robots.",
		Section: "NVIDIA Isaac",
		Week:    "8-10",
		Topic:   "Isaac Sim",
	},
	{
		Content: "Isaac ROS provides GPU-accelerated ROS 2 packages for perception, navigation, and manipulation. Key packages include: isaac_ros_visual_slam (visual odometry), isaac_ros_nvblox (3D reconstruction), isaac_ros_dnn_inference (deep learning inference). These leverage NVIDIA GPUs for real-time performance.",
		Section: "NVIDIA Isaac",
		Week:    "8-10",
		Topic:   "Isaac ROS",
	},
	{
		Content: "Nav2 (Navigation 2) is the ROS 2 navigation stack. It provides autonomous navigation capabilities including path planning (using A*, Dijkstra, or other algorithms), obstacle avoidance, localization, and behavior trees. Nav2 integrates with costmaps that represent obstacle information from sensors.",
		Section: "NVIDIA Isaac",
		Week:    "8-10",
		Topic:   "Nav2 Navigation",
	},
	{
		Content: "Perception pipelines in robotics involve sensor data processing, object detection, pose estimation, and scene understanding. NVIDIA Isaac provides GPU-accelerated perception using deep learning models. Common tasks: object detection (YOLO, Faster R-CNN), segmentation, 3D pose estimation.",
		Section: "NVIDIA Isaac",
		Week:    "8-10",
		Topic:   "AI Perception",
	},
	{
		Content: "Vision-Language-Action (VLA) models combine computer vision, natural language processing, and robotic control. They enable robots to understand multimodal instructions like \"Pick up the red cup on the table\" and execute corresponding actions. VLA models bridge high-level human commands with low-level motor control.",
		Section: "VLA Integration",
		Week:    "11-13",
		Topic:   "VLA Models",
	},
	{
		Content: "OpenAI Whisper is a robust speech recognition model that converts voice commands to text. In robotics, Whisper enables voice-controlled interfaces. Integration: audio input, Whisper API, text transcript, robot command parser, action execution. Supports multilingual recognition.",
		Section: "VLA Integration",
		Week:    "11-13",
		Topic:   "Voice Commands - Whisper",
	},
	{
		Content: "Cognitive planning in robotics involves task decomposition, sequential reasoning, and adaptive execution. Modern approaches use Large Language Models (LLMs) like GPT-4 for high-level planning: breaking complex tasks into subtasks, handling exceptions, and reasoning about object affordances and spatial relationships.",
		Section: "VLA Integration",
		Week:    "11-13",
		Topic:   "Cognitive Planning",
	},
	{
		Content: "The capstone humanoid project integrates all quarter components: ROS 2 communication, Gazebo simulation, NVIDIA Isaac perception, and VLA-based control. Students build a complete pipeline where a humanoid robot receives voice commands, plans actions using LLMs, navigates environments, and manipulates objects - demonstrating end-to-end Physical AI capabilities.",
		Section: "VLA Integration",
		Week:    "11-13",
		Topic:   "Capstone Project",
	},
	{
		Content: "SLAM (Simultaneous Localization and Mapping) is the problem of building a map of an unknown environment while simultaneously tracking the robot's location within it. Key algorithms: EKF-SLAM, FastSLAM, ORB-SLAM. In ROS 2, SLAM is typically implemented using packages like slam_toolbox or Cartographer.",
		Section: "Advanced Topics",
		Week:    "8-10",
		Topic:   "SLAM",
	},
	{
		Content: "Kinematics involves computing robot motion without considering forces. Forward kinematics: given joint angles, compute end-effector pose. Inverse kinematics: given desired end-effector pose, compute required joint angles. Essential for manipulation and locomotion control.",
		Section: "Advanced Topics",
		Week:    "2-4",
		Topic:   "Robot Kinematics",
	},
	{
		Content: "Control theory for robotics includes PID control, model predictive control (MPC), and adaptive control. PID controllers are commonly used for joint control. MPC is used for trajectory optimization. ROS 2 provides ros2_control framework for implementing robot controllers.",
		Section: "Advanced Topics",
		Week:    "2-4",
		Topic:   "Robot Control",
	},
}

func main() {
	color.Cyan("Chapter 1 Corpus Indexing\n")

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		color.Yellow("Embedding provider: OPENAI (text-embedding-3-small)")
	} else {
		embeddingProvider = embedding.NewLocalProvider(cfg.Ai.LocalBaseURL, cfg.Ai.LocalModel)
		color.Yellow("Embedding provider: LOCAL (%s)", cfg.Ai.LocalModel)
	}

	index, err := vectorindex.NewPGVectorIndex(gormDB, cfg.Ai.IndexTable, embeddingProvider.Dimension())
	if err != nil {
		color.Red("Failed to initialize vector index: %v", err)
		os.Exit(1)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	ingestService := service.NewIngestService(pubSub, cfg.Keys.IngestTopic, embeddingProvider, index, sysLogger)

	ctx := context.Background()
	for i, section := range chapter1Sections {
		color.Yellow("[%d/%d] Indexing: %s / %s", i+1, len(chapter1Sections), section.Section, section.Topic)
		err := ingestService.IngestSection(ctx, dto.PublishIngestSectionMessage{
			Content: section.Content,
			Section: section.Section,
			Week:    section.Week,
			Topic:   section.Topic,
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
	}

	count, err := index.Count(ctx)
	if err != nil {
		color.Red("Failed to read index size: %v", err)
		os.Exit(1)
	}

	color.Green("\nSUCCESS: Chapter 1 content indexed")
	color.Green("Sections: %d", len(chapter1Sections))
	color.Green("Documents in index: %d", count)
	color.Green("Vector dimension: %d", index.Dimension())
}
